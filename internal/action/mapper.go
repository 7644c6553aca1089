// Package action resolves confirmed gesture symbols to robot command
// strings via a JSON binding file.
package action

import (
	"encoding/json"
	"log"
	"os"
)

// Well-known command and binding tokens.
const (
	// FallbackKey is the binding consulted when nothing else matches.
	FallbackKey = "FALLBACK_ACTION"

	// UnknownCommand marks a lookup miss. It must never be dispatched.
	UnknownCommand = "UNKNOWN_COMMAND"

	// NoAction means the gesture deliberately maps to nothing.
	NoAction = "NO_ACTION"

	// Stop is the safe command and the hard-coded fallback value.
	Stop = "STOP"
)

// Mapper translates gesture symbols into command strings using bindings
// loaded once at startup. Lookups never fail: a missing key yields
// UnknownCommand.
type Mapper struct {
	bindings map[string]string
}

// NewMapper builds a mapper from an explicit binding set. A nil map yields
// the minimal fallback mapping.
func NewMapper(bindings map[string]string) *Mapper {
	if bindings == nil {
		bindings = map[string]string{FallbackKey: Stop}
	}
	return &Mapper{bindings: bindings}
}

// LoadMapper reads the gesture-to-command bindings from a JSON file. It
// never fails construction: if the file is missing or malformed the
// condition is logged and the mapper degrades to {FALLBACK_ACTION: STOP}.
func LoadMapper(path string) *Mapper {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("action: cannot read bindings %s: %v, using fallback", path, err)
		return NewMapper(nil)
	}

	var bindings map[string]string
	if err := json.Unmarshal(data, &bindings); err != nil {
		log.Printf("action: malformed bindings %s: %v, using fallback", path, err)
		return NewMapper(nil)
	}
	if len(bindings) == 0 {
		log.Printf("action: empty bindings %s, using fallback", path)
		return NewMapper(nil)
	}
	return NewMapper(bindings)
}

// Command looks up the command bound to a gesture symbol. Symbols with no
// binding return UnknownCommand, which callers must treat as "do not
// dispatch".
func (m *Mapper) Command(symbol string) string {
	if cmd, ok := m.bindings[symbol]; ok {
		return cmd
	}
	return UnknownCommand
}

// Bindings returns a copy of the active mapping, for display surfaces.
func (m *Mapper) Bindings() map[string]string {
	out := make(map[string]string, len(m.bindings))
	for k, v := range m.bindings {
		out[k] = v
	}
	return out
}
