// Package server assembles the muchd HTTP API: account management, login,
// and the system/formula/check endpoints that expose the core checker over
// HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/dekarrin/muchk/server/api"
	"github.com/dekarrin/muchk/server/dao"
	"github.com/dekarrin/muchk/server/middle"
	"github.com/dekarrin/muchk/server/tunas"
	"github.com/go-chi/chi/v5"
)

// NewRouter builds the full muchd API router. db provides persistence, svc
// wraps it with the service-layer logic the endpoints call into, and secret
// signs and verifies bearer tokens.
//
// unauthDelay is the pause applied before responding to unauthenticated or
// forbidden requests (see middle.AuthHandler and api.httpEndpoint).
func NewRouter(db dao.Store, svc tunas.Service, secret []byte, unauthDelay time.Duration) http.Handler {
	a := api.API{
		Backend:     svc,
		UnauthDelay: unauthDelay,
		Secret:      secret,
	}

	required := middle.RequireAuth(db.Users(), secret, unauthDelay, dao.User{})
	optional := middle.OptionalAuth(db.Users(), secret, unauthDelay, dao.User{})

	r := chi.NewRouter()
	r.Use(middle.DontPanic())

	r.Route(api.PathPrefix, func(r chi.Router) {
		r.With(optional).Get("/info", a.HTTPGetInfo())

		r.With(optional).Post("/login", a.HTTPCreateLogin())
		r.With(required).Delete("/login/{id}", a.HTTPDeleteLogin())

		r.With(required).Post("/tokens", a.HTTPCreateToken())

		r.With(optional).Post("/users", a.HTTPCreateUser())
		r.With(required).Get("/users", a.HTTPGetAllUsers())
		r.With(required).Get("/users/{id}", a.HTTPGetUser())
		r.With(required).Patch("/users/{id}", a.HTTPUpdateUser())
		r.With(required).Put("/users/{id}", a.HTTPReplaceUser())
		r.With(required).Delete("/users/{id}", a.HTTPDeleteUser())

		r.With(required).Post("/systems", a.HTTPCreateSystem())
		r.With(required).Get("/systems", a.HTTPGetAllSystems())
		r.With(required).Get("/systems/{id}", a.HTTPGetSystem())
		r.With(required).Delete("/systems/{id}", a.HTTPDeleteSystem())

		r.With(required).Post("/formulas", a.HTTPCreateFormula())
		r.With(required).Get("/formulas", a.HTTPGetAllFormulas())
		r.With(required).Get("/formulas/{id}", a.HTTPGetFormula())
		r.With(required).Delete("/formulas/{id}", a.HTTPDeleteFormula())

		r.With(required).Post("/checks", a.HTTPCreateCheck())
		r.With(required).Get("/checks", a.HTTPGetAllChecks())
		r.With(required).Get("/checks/{id}", a.HTTPGetCheck())
		r.With(required).Delete("/checks/{id}", a.HTTPDeleteCheck())
	})

	return r
}
