package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/store"
)

type staticState struct {
	state State
}

func (s staticState) Snapshot() State { return s.state }

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	s := New(":0", staticState{State{
		Gesture:   "PEACE",
		Confirmed: "PEACE",
		Command:   "MOVE_BACKWARD",
		Enabled:   true,
	}}, nil, st)
	return s, st
}

func doJSON(t *testing.T, h http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s.routes(), http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestStateEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s.routes(), http.MethodGet, "/api/state", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got State
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Confirmed != "PEACE" || got.Command != "MOVE_BACKWARD" || !got.Enabled {
		t.Errorf("unexpected state %+v", got)
	}
}

func TestBindingsCRUD(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.routes()

	var reloads int
	s.OnBindingsChanged = func(m map[string]string) { reloads++ }

	// Empty list to start.
	rec := doJSON(t, h, http.MethodGet, "/api/bindings", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty list, got %d %s", rec.Code, rec.Body.String())
	}

	// Create.
	rec = doJSON(t, h, http.MethodPut, "/api/bindings/OPEN_PALM", `{"command":"STOP"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("put: expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	var b store.Binding
	json.Unmarshal(rec.Body.Bytes(), &b)
	if b.Gesture != "OPEN_PALM" || b.Command != "STOP" {
		t.Errorf("unexpected binding %+v", b)
	}

	// List shows it.
	rec = doJSON(t, h, http.MethodGet, "/api/bindings", "")
	var list []store.Binding
	json.Unmarshal(rec.Body.Bytes(), &list)
	if len(list) != 1 {
		t.Fatalf("expected one binding, got %d", len(list))
	}

	// Delete.
	rec = doJSON(t, h, http.MethodDelete, "/api/bindings/OPEN_PALM", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodDelete, "/api/bindings/OPEN_PALM", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing binding, got %d", rec.Code)
	}

	if reloads != 2 {
		t.Errorf("expected 2 binding-change notifications, got %d", reloads)
	}
}

func TestPutBindingValidation(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.routes()

	rec := doJSON(t, h, http.MethodPut, "/api/bindings/PEACE", `{"command":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty command, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodPut, "/api/bindings/PEACE", `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad body, got %d", rec.Code)
	}
}

func TestDispatchesEndpoint(t *testing.T) {
	s, st := newTestServer(t)
	h := s.routes()

	st.RecordDispatch(httptest.NewRequest("GET", "/", nil).Context(), "STOP", "gesture")

	rec := doJSON(t, h, http.MethodGet, "/api/dispatches?limit=10", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list []store.Dispatch
	json.Unmarshal(rec.Body.Bytes(), &list)
	if len(list) != 1 || list[0].Command != "STOP" {
		t.Errorf("unexpected dispatches %+v", list)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/dispatches?limit=zero", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad limit, got %d", rec.Code)
	}
}

func TestStreamWithoutSource(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s.routes(), http.MethodGet, "/api/stream", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without a frame source, got %d", rec.Code)
	}
}

func TestEventsWebsocket(t *testing.T) {
	s, _ := newTestServer(t)
	ts := httptest.NewServer(s.routes())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Give the hub a moment to register the client.
	time.Sleep(50 * time.Millisecond)
	s.Broadcast(Event{Type: "confirmed", Gesture: "PEACE", Command: "MOVE_BACKWARD"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if got.Type != "confirmed" || got.Gesture != "PEACE" {
		t.Errorf("unexpected event %+v", got)
	}
	if got.Time.IsZero() {
		t.Error("expected broadcast to stamp the event time")
	}

	s.hub.Close()
}
