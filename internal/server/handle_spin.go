package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/playwheel/doublespin/internal/catalog"
)

type SpinGroupRequest struct {
	ExcludeGroups []string `json:"excludeGroups"`
}

type SpinGroupResponse struct {
	Group string `json:"group"`
}

type SpinQuestionRequest struct {
	Group              string   `json:"group"`
	ExcludeQuestionIDs []string `json:"excludeQuestionIds"`
}

func handleSpinGroup(store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SpinGroupRequest
		if err := readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		group, err := store.RandomGroup(r.Context(), req.ExcludeGroups)
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, SpinGroupResponse{Group: group})
	}
}

func handleSpinQuestion(store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SpinQuestionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Group == "" {
			writeError(w, http.StatusBadRequest, "group is required")
			return
		}

		q, err := store.RandomQuestion(r.Context(), req.Group, req.ExcludeQuestionIDs)
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

// writeCatalogError maps catalog failures to responses: draw-policy
// violations are the caller's problem (400), anything else is ours.
func writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrExhausted),
		errors.Is(err, catalog.ErrUnknownGroup),
		errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
