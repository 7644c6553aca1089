// Package voice turns microphone speech into robot commands: a transcriber
// produces text, a keyword parser maps it to a command, and a processor
// throttles and forwards the result.
package voice

import (
	"regexp"
	"sort"
	"strings"
)

// Movement commands carry a _VOICE suffix so the robot can apply a
// different speed profile than for gesture-driven motion. STOP is shared.
const (
	CmdStop         = "STOP"
	CmdTurnLeft     = "TURN_LEFT_VOICE"
	CmdTurnRight    = "TURN_RIGHT_VOICE"
	CmdMoveBackward = "MOVE_BACKWARD_VOICE"
	CmdGoForward    = "GO_FORWARD_VOICE"
)

// keywordTable is evaluated in order, so STOP outranks every movement
// word and "go right" is claimed by the turn before "go" can match.
var keywordTable = []struct {
	command string
	phrases []string
}{
	{CmdStop, []string{"stop", "halt", "pause", "stay", "cease"}},
	{CmdTurnLeft, []string{"turn left", "go left", "left turn", "move left", "left"}},
	{CmdTurnRight, []string{"turn right", "go right", "right turn", "move right", "right"}},
	{CmdMoveBackward, []string{"move backward", "go backward", "backward", "back up", "reverse", "backwards", "back"}},
	{CmdGoForward, []string{"go forward", "move forward", "forward", "go", "move", "ahead", "straight"}},
}

var keywordPatterns []struct {
	command string
	res     []*regexp.Regexp
}

func init() {
	for _, entry := range keywordTable {
		phrases := append([]string(nil), entry.phrases...)
		// Longer phrases first so "turn left" wins over "left".
		sort.Slice(phrases, func(i, j int) bool { return len(phrases[i]) > len(phrases[j]) })

		res := make([]*regexp.Regexp, len(phrases))
		for i, p := range phrases {
			res[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(p) + `\b`)
		}
		keywordPatterns = append(keywordPatterns, struct {
			command string
			res     []*regexp.Regexp
		}{entry.command, res})
	}
}

// ParseCommand extracts a robot command from transcribed text. Matching is
// whole-word, so "leftover" does not read as "left". Text with no known
// keyword yields the empty string.
func ParseCommand(text string) string {
	text = strings.ToLower(text)
	for _, entry := range keywordPatterns {
		for _, re := range entry.res {
			if re.MatchString(text) {
				return entry.command
			}
		}
	}
	return ""
}
