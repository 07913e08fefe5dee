package mux

import (
	"net/http"
)

func (m *Mux) getHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		entries, err := m.history.List(r.Context(), playerFromRequest(r).ID, start, rows)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, entries)
	}
}
