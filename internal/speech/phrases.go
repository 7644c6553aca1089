package speech

import (
	"encoding/json"
	"log"
	"os"
)

// LoadPhrases reads the command-to-phrase table from a JSON file. Failures
// are logged and yield an empty table, which simply disables feedback.
func LoadPhrases(path string) map[string]string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("speech: cannot read phrases %s: %v", path, err)
		return map[string]string{}
	}

	var phrases map[string]string
	if err := json.Unmarshal(data, &phrases); err != nil {
		log.Printf("speech: malformed phrases %s: %v", path, err)
		return map[string]string{}
	}
	return phrases
}
