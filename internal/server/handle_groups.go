package server

import (
	"net/http"

	"github.com/playwheel/doublespin/internal/catalog"
	"github.com/playwheel/doublespin/internal/doublespin"
)

type GroupsResponse struct {
	Groups []doublespin.GroupSummary `json:"groups"`
}

func handleGroups(store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := store.ListGroups(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, GroupsResponse{Groups: groups})
	}
}
