package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"

	"casino-server/pkg/playable"
)

type gamePayload struct {
	Bet            *float64                `json:"bet"`
	AdditionalData playable.AdditionalData `json:"additionalData"`
}

type actionPayload struct {
	Action         string                  `json:"action"`
	AdditionalData playable.AdditionalData `json:"additionalData"`
	Context        string                  `json:"context"`
}

func (m *Mux) getGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := gmux.Vars(r)["key"]

		res, err := m.room(r).State(key)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

func (m *Mux) postGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := gmux.Vars(r)["key"]

		var payload gamePayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		bet := 0
		if payload.Bet != nil {
			var err error
			if bet, err = (playable.AdditionalData{"bet": *payload.Bet}).GetBet(); err != nil {
				writeGameError(w, err)
				return
			}
		}

		if payload.AdditionalData == nil {
			payload.AdditionalData = playable.AdditionalData{}
		}

		res, err := m.room(r).Start(r.Context(), key, bet, payload.AdditionalData)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, res)
	}
}

func (m *Mux) postGameAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := gmux.Vars(r)["key"]

		var payload actionPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		if payload.AdditionalData == nil {
			payload.AdditionalData = playable.AdditionalData{}
		}

		res, err := m.room(r).Action(r.Context(), key, &playable.PayloadIn{
			Action:         payload.Action,
			Subject:        key,
			AdditionalData: payload.AdditionalData,
			Context:        payload.Context,
		})
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}
