package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/dekarrin/muchk/server/dao"
	"github.com/dekarrin/muchk/server/middle"
	"github.com/dekarrin/muchk/server/result"
	"github.com/dekarrin/muchk/server/serr"
)

func systemToModel(sys dao.System) SystemModel {
	return SystemModel{
		URI:      PathPrefix + "/systems/" + sys.ID.String(),
		ID:       sys.ID.String(),
		Name:     sys.Name,
		Source:   sys.Source,
		Created:  sys.Created.Format(time.RFC3339),
		Modified: sys.Modified.Format(time.RFC3339),
	}
}

// HTTPGetAllSystems returns a HandlerFunc that lists the systems owned by the
// logged-in user. Admins may list every system.
func (api API) HTTPGetAllSystems() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetAllSystems)
}

func (api API) epGetAllSystems(req *http.Request) result.Result {
	user := req.Context().Value(middle.AuthUser).(dao.User)

	var systems []dao.System
	var err error
	if user.Role == dao.Admin {
		systems, err = api.Backend.GetAllSystems(req.Context())
	} else {
		systems, err = api.Backend.GetAllSystemsByUser(req.Context(), user.ID)
	}
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]SystemModel, len(systems))
	for i := range systems {
		resp[i] = systemToModel(systems[i])
	}

	return result.OK(resp, "user '%s' got all systems", user.Username)
}

// HTTPCreateSystem returns a HandlerFunc that uploads a new labeled
// transition system in Aldebaran text form.
func (api API) HTTPCreateSystem() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateSystem)
}

func (api API) epCreateSystem(req *http.Request) result.Result {
	user := req.Context().Value(middle.AuthUser).(dao.User)

	var createReq SystemModel
	if err := parseJSON(req, &createReq); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	sys, err := api.Backend.CreateSystem(req.Context(), user.ID, createReq.Name, createReq.Source)
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.Created(systemToModel(sys), "user '%s' created system '%s'", user.Username, sys.Name)
}

// HTTPGetSystem returns a HandlerFunc that retrieves one system. Only its
// owner or an admin may retrieve it.
func (api API) HTTPGetSystem() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetSystem)
}

func (api API) epGetSystem(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	sys, err := api.Backend.GetSystem(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	if sys.UserID != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) get system %s: forbidden", user.Username, user.Role, id)
	}

	return result.OK(systemToModel(sys), "user '%s' got system '%s'", user.Username, sys.Name)
}

// HTTPDeleteSystem returns a HandlerFunc that deletes one system. Only its
// owner or an admin may delete it.
func (api API) HTTPDeleteSystem() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDeleteSystem)
}

func (api API) epDeleteSystem(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	sys, err := api.Backend.GetSystem(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	if sys.UserID != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) delete system %s: forbidden", user.Username, user.Role, id)
	}

	deleted, err := api.Backend.DeleteSystem(req.Context(), id)
	if err != nil && !errors.Is(err, serr.ErrNotFound) {
		return result.InternalServerError("could not delete system: " + err.Error())
	}

	return result.NoContent("user '%s' successfully deleted system '%s'", user.Username, deleted.Name)
}
