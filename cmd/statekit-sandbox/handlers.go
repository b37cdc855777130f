package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Statekit/statekit_sdk_go/pkg/resource"
	resourcemock "github.com/Statekit/statekit_sdk_go/pkg/resource/mock"
)

type sandbox struct {
	backend *resourcemock.Mock
	hub     *hub
}

func (s *sandbox) handleList(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]
	payload, err := s.backend.GetAll(r.Context(), collection, nil)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *sandbox) handleGet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	payload, err := s.backend.Get(r.Context(), vars["collection"], vars["id"], nil)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *sandbox) handleCreate(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("read body: %v", err))
		return
	}
	defer r.Body.Close()

	payload, err := s.backend.Create(r.Context(), collection, body, nil)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	s.hub.broadcast(changeEvent{
		Action:     "save",
		Collection: collection,
		ID:         payloadID(payload),
		Data:       payload,
	})
	writeJSON(w, http.StatusCreated, payload)
}

func (s *sandbox) handleUpdate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("read body: %v", err))
		return
	}
	defer r.Body.Close()

	payload, err := s.backend.Update(r.Context(), vars["collection"], vars["id"], body, nil)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	s.hub.broadcast(changeEvent{
		Action:     "update",
		Collection: vars["collection"],
		ID:         vars["id"],
		Data:       payload,
	})
	writeJSON(w, http.StatusOK, payload)
}

func writeBackendError(w http.ResponseWriter, err error) {
	if errors.Is(err, resource.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func payloadID(payload json.RawMessage) string {
	var probe struct {
		ID any `json:"id"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil || probe.ID == nil {
		return ""
	}
	if s, ok := probe.ID.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", probe.ID)
}
