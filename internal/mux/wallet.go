package mux

import "net/http"

type walletResponse struct {
	PlayerID string   `json:"playerId"`
	Balance  int      `json:"balance"`
	Active   []string `json:"active"`
}

func (m *Mux) getWallet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rm := m.room(r)
		balance, err := rm.Balance(r.Context())
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, walletResponse{
			PlayerID: rm.PlayerID(),
			Balance:  balance,
			Active:   rm.InProgress(),
		})
	}
}
