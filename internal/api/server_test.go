package api

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/smazurov/panelnode/internal/config"
	"github.com/smazurov/panelnode/internal/events"
)

type staticRegistry struct {
	programs config.Programs
}

func (r *staticRegistry) Programs() config.Programs { return r.programs }

type recordingSender struct {
	mu    sync.Mutex
	lines []string
}

func (s *recordingSender) SendLine(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	return nil
}

func (s *recordingSender) sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

func newTestServer(t *testing.T, panel LEDSender) (*httptest.Server, *events.Bus) {
	t.Helper()
	bus := events.New()
	server := NewServer(&Options{
		EventBus: bus,
		Registry: &staticRegistry{programs: config.Programs{
			"1": {"notepad.exe"},
			"2": {"bash", "-c", "echo hi"},
		}},
		Panel: panel,
	})
	ts := httptest.NewServer(server.mux)
	t.Cleanup(ts.Close)
	return ts, bus
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s: %v", url, err)
		}
	}
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	var body HealthData
	resp := getJSON(t, ts.URL+"/api/health", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q", body.Status)
	}
}

func TestVersionEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	var body VersionData
	resp := getJSON(t, ts.URL+"/api/version", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body.Version == "" || body.GoVersion == "" {
		t.Errorf("version data incomplete: %+v", body)
	}
}

func TestRegistryEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	var body struct {
		Buttons []RegistryEntry `json:"buttons"`
	}
	resp := getJSON(t, ts.URL+"/api/registry", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(body.Buttons) != 2 {
		t.Fatalf("buttons = %+v", body.Buttons)
	}
	if body.Buttons[0].Button != "1" || body.Buttons[1].Button != "2" {
		t.Errorf("buttons not sorted: %+v", body.Buttons)
	}
	if body.Buttons[0].Command[0] != "notepad.exe" {
		t.Errorf("command = %v", body.Buttons[0].Command)
	}
}

func TestLEDControl(t *testing.T) {
	panel := &recordingSender{}
	ts, _ := newTestServer(t, panel)

	resp, err := http.Post(ts.URL+"/api/leds", "application/json",
		strings.NewReader(`{"led": "3", "mode": "blink", "period": 180}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	want := []string{"LED|3|BLINK|180"}
	if got := panel.sent(); len(got) != 1 || got[0] != want[0] {
		t.Errorf("sent = %v, want %v", got, want)
	}
}

func TestLEDControlRejectsUnknownMode(t *testing.T) {
	panel := &recordingSender{}
	ts, _ := newTestServer(t, panel)

	resp, err := http.Post(ts.URL+"/api/leds", "application/json",
		strings.NewReader(`{"led": "3", "mode": "STROBE"}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if got := panel.sent(); len(got) != 0 {
		t.Errorf("rejected mode still sent %v", got)
	}
}

func TestSSEStreamDeliversEvents(t *testing.T) {
	ts, bus := newTestServer(t, nil)

	// Publish repeatedly until received; the subscription only exists once
	// the handler is running.
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				bus.Publish(events.ButtonEvent{ButtonID: "1", Action: "DOWN", Timestamp: "now"})
			}
		}
	}()

	resp, err := http.Get(ts.URL + "/api/events")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "text/event-stream") {
		t.Fatalf("content type = %s", resp.Header.Get("Content-Type"))
	}

	received := make(chan string, 1)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			line := scanner.Text()
			if strings.HasPrefix(line, "data:") && strings.Contains(line, "button_id") {
				received <- line
				return
			}
		}
	}()

	select {
	case line := <-received:
		if !strings.Contains(line, `"1"`) {
			t.Errorf("event line = %q", line)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("SSE event never received")
	}
}
