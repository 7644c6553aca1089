package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ayusman/mudra/internal/store"
)

func (s *Server) handleListBindings(w http.ResponseWriter, r *http.Request) {
	bindings, err := s.store.Bindings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if bindings == nil {
		bindings = []store.Binding{}
	}
	writeJSON(w, http.StatusOK, bindings)
}

func (s *Server) handlePutBinding(w http.ResponseWriter, r *http.Request) {
	gesture := mux.Vars(r)["gesture"]

	var body struct {
		Command string `json:"command"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if body.Command == "" {
		writeError(w, http.StatusBadRequest, "command is required")
		return
	}

	binding, err := s.store.SaveBinding(r.Context(), gesture, body.Command)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.notifyBindingsChanged(r)
	writeJSON(w, http.StatusOK, binding)
}

func (s *Server) handleDeleteBinding(w http.ResponseWriter, r *http.Request) {
	gesture := mux.Vars(r)["gesture"]

	err := s.store.DeleteBinding(r.Context(), gesture)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no such binding")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.notifyBindingsChanged(r)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDispatches(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	dispatches, err := s.store.RecentDispatches(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if dispatches == nil {
		dispatches = []store.Dispatch{}
	}
	writeJSON(w, http.StatusOK, dispatches)
}

func (s *Server) notifyBindingsChanged(r *http.Request) {
	if s.OnBindingsChanged == nil {
		return
	}
	m, err := s.store.BindingMap(r.Context())
	if err != nil {
		log.Printf("server: reload bindings: %v", err)
		return
	}
	s.OnBindingsChanged(m)
}
