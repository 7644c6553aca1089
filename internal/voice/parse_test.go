package voice

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"stop", CmdStop},
		{"please halt now", CmdStop},
		{"turn left", CmdTurnLeft},
		{"go left", CmdTurnLeft},
		{"left", CmdTurnLeft},
		{"go right", CmdTurnRight},
		{"right turn", CmdTurnRight},
		{"move backward", CmdMoveBackward},
		{"back up", CmdMoveBackward},
		{"reverse", CmdMoveBackward},
		{"go forward", CmdGoForward},
		{"straight", CmdGoForward},
		{"go", CmdGoForward},
		{"", ""},
		{"hello there", ""},
	}

	for _, tt := range tests {
		if got := ParseCommand(tt.text); got != tt.want {
			t.Errorf("ParseCommand(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestParseCommandStopOutranksMovement(t *testing.T) {
	if got := ParseCommand("stop going forward"); got != CmdStop {
		t.Errorf("expected STOP to win, got %q", got)
	}
}

func TestParseCommandWholeWordsOnly(t *testing.T) {
	if got := ParseCommand("the leftover pizza"); got != "" {
		t.Errorf("expected no match inside a larger word, got %q", got)
	}
	if got := ParseCommand("backwards compatibility"); got != CmdMoveBackward {
		t.Errorf("expected whole-word 'backwards' to match, got %q", got)
	}
}

func TestParseCommandLongestPhraseFirst(t *testing.T) {
	// "go right" must be claimed by the turn, not by "go".
	if got := ParseCommand("please go right"); got != CmdTurnRight {
		t.Errorf("expected TURN_RIGHT_VOICE, got %q", got)
	}
	if got := ParseCommand("move left a bit"); got != CmdTurnLeft {
		t.Errorf("expected TURN_LEFT_VOICE, got %q", got)
	}
}

func TestParseCommandCaseInsensitive(t *testing.T) {
	if got := ParseCommand("STOP RIGHT THERE"); got != CmdStop {
		t.Errorf("expected STOP, got %q", got)
	}
}
