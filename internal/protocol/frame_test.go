package protocol

import "testing"

func TestLEDCommandBlink(t *testing.T) {
	got := LEDCommand("3", ModeBlink, 180)
	if got != "LED|3|BLINK|180" {
		t.Errorf("LEDCommand() = %q, want %q", got, "LED|3|BLINK|180")
	}
}

func TestLEDCommandOff(t *testing.T) {
	got := LEDCommand("3", ModeOff, -1)
	if got != "LED|3|OFF" {
		t.Errorf("LEDCommand() = %q, want %q", got, "LED|3|OFF")
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"BTN|1|DOWN", 3},
		{"  BTN|1|DOWN \n", 3},
		{"READY", 1},
		{"", 0},
		{"   \t ", 0},
	}
	for _, tt := range tests {
		fields := Split(tt.in)
		if len(fields) != tt.want {
			t.Errorf("Split(%q) = %v, want %d fields", tt.in, fields, tt.want)
		}
	}
}

func TestTopicCaseNormalized(t *testing.T) {
	if got := Topic(Split("btn|1|down")); got != TopicButton {
		t.Errorf("Topic() = %q, want %q", got, TopicButton)
	}
	if got := Topic(nil); got != "" {
		t.Errorf("Topic(nil) = %q, want empty", got)
	}
}

func TestHandshake(t *testing.T) {
	if Handshake != "HELLO|PC" {
		t.Errorf("Handshake = %q", Handshake)
	}
}
