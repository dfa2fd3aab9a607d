package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writePrograms(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "programs.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadProgramsAllShapes(t *testing.T) {
	path := writePrograms(t, `{
		"1": "notepad.exe",
		"2": ["bash", "-c", "echo hi"],
		"3": {"command": "mpv", "args": ["--fs", "video.mkv"]},
		"4": {"command": "xdg-open", "args": "https://example.org"},
		"5": {"command": "true"}
	}`)

	programs, err := LoadPrograms(path)
	if err != nil {
		t.Fatalf("LoadPrograms() error: %v", err)
	}

	want := Programs{
		"1": {"notepad.exe"},
		"2": {"bash", "-c", "echo hi"},
		"3": {"mpv", "--fs", "video.mkv"},
		"4": {"xdg-open", "https://example.org"},
		"5": {"true"},
	}
	if !reflect.DeepEqual(programs, want) {
		t.Errorf("LoadPrograms() = %v, want %v", programs, want)
	}
}

func TestLoadProgramsNumericTokens(t *testing.T) {
	path := writePrograms(t, `{"9": ["sleep", 5]}`)

	programs, err := LoadPrograms(path)
	if err != nil {
		t.Fatalf("LoadPrograms() error: %v", err)
	}
	if got := programs["9"]; !reflect.DeepEqual(got, []string{"sleep", "5"}) {
		t.Errorf("numeric token: got %v", got)
	}
}

func TestLoadProgramsEmptyRegistry(t *testing.T) {
	path := writePrograms(t, `{}`)

	if _, err := LoadPrograms(path); err == nil {
		t.Fatal("LoadPrograms() with empty registry succeeded, want error")
	}
}

func TestLoadProgramsErrorNamesButton(t *testing.T) {
	path := writePrograms(t, `{"7": {"args": ["no", "command"]}}`)

	_, err := LoadPrograms(path)
	if err == nil {
		t.Fatal("LoadPrograms() succeeded, want error")
	}
	if !strings.Contains(err.Error(), `"7"`) {
		t.Errorf("error %q does not name the offending button", err)
	}
}

func TestLoadProgramsMalformedEntries(t *testing.T) {
	cases := []string{
		`{"1": 42}`,
		`{"1": ""}`,
		`{"1": []}`,
		`{"1": [{"nested": true}]}`,
	}
	for _, content := range cases {
		path := writePrograms(t, content)
		if _, err := LoadPrograms(path); err == nil {
			t.Errorf("LoadPrograms(%s) succeeded, want error", content)
		}
	}
}

func TestLoadProgramsMissingFile(t *testing.T) {
	if _, err := LoadPrograms(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("LoadPrograms() with missing file succeeded, want error")
	}
}

func TestProgramsButtonsSorted(t *testing.T) {
	p := Programs{"2": {"b"}, "1": {"a"}, "10": {"c"}}
	want := []string{"1", "10", "2"}
	if got := p.Buttons(); !reflect.DeepEqual(got, want) {
		t.Errorf("Buttons() = %v, want %v", got, want)
	}
}
