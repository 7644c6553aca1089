// Package server exposes the operator dashboard over HTTP: live state,
// binding management, an MJPEG preview, and a websocket event feed.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/store"
)

// State is the live pipeline snapshot served at /api/state.
type State struct {
	Gesture     string `json:"gesture"`
	Confirmed   string `json:"confirmed"`
	Command     string `json:"command"`
	Enabled     bool   `json:"enabled"`
	VoiceActive bool   `json:"voice_active"`
}

// StateSource provides the snapshot; the app implements it.
type StateSource interface {
	Snapshot() State
}

// FrameSource serves the newest annotated preview frame, or nil when
// nothing new is available. The server owns the returned Mat.
type FrameSource interface {
	Frame() *gocv.Mat
}

// Server is the HTTP surface.
type Server struct {
	state  StateSource
	frames FrameSource
	store  *store.Store
	hub    *Hub
	srv    *http.Server

	// OnBindingsChanged, when set, is called with the full binding map
	// after every successful edit.
	OnBindingsChanged func(map[string]string)
}

// New assembles the server; Start brings it up.
func New(addr string, state StateSource, frames FrameSource, st *store.Store) *Server {
	s := &Server{
		state:  state,
		frames: frames,
		store:  st,
		hub:    NewHub(),
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	api.HandleFunc("/bindings", s.handleListBindings).Methods(http.MethodGet)
	api.HandleFunc("/bindings/{gesture}", s.handlePutBinding).Methods(http.MethodPut)
	api.HandleFunc("/bindings/{gesture}", s.handleDeleteBinding).Methods(http.MethodDelete)
	api.HandleFunc("/dispatches", s.handleDispatches).Methods(http.MethodGet)
	api.HandleFunc("/stream", s.handleStream).Methods(http.MethodGet)
	api.Handle("/events", s.hub)

	return r
}

// Start runs the listener in the background.
func (s *Server) Start() {
	go func() {
		log.Printf("server: listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("server: %v", err)
		}
	}()
}

// Shutdown drains connections and closes the event hub.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.srv.Shutdown(ctx)
}

// Broadcast pushes an event to all websocket subscribers.
func (s *Server) Broadcast(e Event) {
	s.hub.Broadcast(e)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.state.Snapshot())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
