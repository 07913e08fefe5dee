package mux

import (
	"context"
	"net/http"
	"strings"

	gmux "github.com/gorilla/mux"

	"casino-server/internal/jwt"
	"casino-server/pkg/history"
	"casino-server/pkg/room"
	"casino-server/pkg/wallet"
)

type ctxKey int

const (
	ctxPlayerKey ctxKey = iota
)

// player is the authenticated caller
type player struct {
	ID    string
	Token string
}

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss
	wallets wallet.Provider
	history history.Store

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, pitBoss *room.PitBoss, wallets wallet.Provider, store history.Store) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
		wallets: wallets,
		history: store,
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	}

	// requires bearer authorization
	{
		r := this.authRouter
		r.Methods(http.MethodGet).Path("/wallet").Handler(this.getWallet())
		r.Methods(http.MethodGet).Path("/history").Handler(this.getHistory())
		r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())

		gr := r.PathPrefix("/game/{key:[a-z-]+}").Subrouter()
		gr.Methods(http.MethodGet).Path("").Handler(this.getGame())
		gr.Methods(http.MethodPost).Path("").Handler(this.postGame())
		gr.Methods(http.MethodPost).Path("/action").Handler(this.postGameAction())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		id, err := jwt.ValidSubject(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerKey, &player{ID: id, Token: token})
		w.Header().Set("Casino-PlayerID", id)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func playerFromRequest(r *http.Request) *player {
	return r.Context().Value(ctxPlayerKey).(*player)
}

// room returns the caller's room holding a wallet built from their token
func (m *Mux) room(r *http.Request) *room.Room {
	p := playerFromRequest(r)
	return m.pitBoss.Room(p.ID, m.wallets.Wallet(p.ID, p.Token))
}
