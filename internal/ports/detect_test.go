package ports

import "testing"

func TestPickPrefersArduinoDescriptor(t *testing.T) {
	candidates := []Candidate{
		{Name: "/dev/ttyS0", Description: "PCI Serial"},
		{Name: "/dev/ttyUSB0", Description: "Arduino Uno", IsUSB: true},
	}

	got, err := pick(candidates)
	if err != nil {
		t.Fatalf("pick() error: %v", err)
	}
	if got.name != "/dev/ttyUSB0" || !got.preferred {
		t.Errorf("pick() = %+v, want preferred /dev/ttyUSB0", got)
	}
}

func TestPickPrefersKnownVID(t *testing.T) {
	candidates := []Candidate{
		{Name: "/dev/ttyS0", Description: "PCI Serial"},
		{Name: "/dev/ttyUSB1", Description: "USB Serial", IsUSB: true, VID: "1A86"},
	}

	got, err := pick(candidates)
	if err != nil {
		t.Fatalf("pick() error: %v", err)
	}
	if got.name != "/dev/ttyUSB1" || !got.preferred {
		t.Errorf("pick() = %+v, want CH340 port", got)
	}
}

func TestPickFallsBackToFirstPort(t *testing.T) {
	candidates := []Candidate{
		{Name: "/dev/ttyS0", Description: "PCI Serial"},
		{Name: "/dev/ttyS1", Description: "PCI Serial"},
	}

	got, err := pick(candidates)
	if err != nil {
		t.Fatalf("pick() error: %v", err)
	}
	if got.name != "/dev/ttyS0" || got.preferred {
		t.Errorf("pick() = %+v, want unpreferred first port", got)
	}
}

func TestPickNoPortsIsError(t *testing.T) {
	if _, err := pick(nil); err == nil {
		t.Fatal("pick() with no ports succeeded, want error")
	}
}

func TestDetectExplicitPortWins(t *testing.T) {
	got, err := Detect("/dev/ttyACM7", nil)
	if err != nil || got != "/dev/ttyACM7" {
		t.Errorf("Detect() = (%q, %v), want explicit port", got, err)
	}
}
