package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dekarrin/muchk/server/dao"
	"github.com/dekarrin/muchk/server/middle"
	"github.com/dekarrin/muchk/server/result"
	"github.com/dekarrin/muchk/server/serr"
	"github.com/google/uuid"
)

func checkToModel(c dao.CheckRun) CheckModel {
	return CheckModel{
		URI:        PathPrefix + "/checks/" + c.ID.String(),
		ID:         c.ID.String(),
		SystemID:   c.SystemID.String(),
		FormulaID:  c.FormulaID.String(),
		Algorithm:  c.Algorithm,
		Satisfied:  c.Satisfied,
		Iterations: c.Iterations,
		Created:    c.Created.Format(time.RFC3339),
	}
}

// HTTPGetAllChecks returns a HandlerFunc that lists the check runs owned by
// the logged-in user. Admins may list every check run.
func (api API) HTTPGetAllChecks() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetAllChecks)
}

func (api API) epGetAllChecks(req *http.Request) result.Result {
	user := req.Context().Value(middle.AuthUser).(dao.User)

	var checks []dao.CheckRun
	var err error
	if user.Role == dao.Admin {
		checks, err = api.Backend.GetAllChecks(req.Context())
	} else {
		checks, err = api.Backend.GetAllChecksByUser(req.Context(), user.ID)
	}
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]CheckModel, len(checks))
	for i := range checks {
		resp[i] = checkToModel(checks[i])
	}

	return result.OK(resp, "user '%s' got all checks", user.Username)
}

// HTTPCreateCheck returns a HandlerFunc that runs the checker against a
// stored system+formula pair and persists the verdict.
func (api API) HTTPCreateCheck() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateCheck)
}

func (api API) epCreateCheck(req *http.Request) result.Result {
	user := req.Context().Value(middle.AuthUser).(dao.User)

	var createReq CheckRequest
	if err := parseJSON(req, &createReq); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	systemID, err := uuid.Parse(createReq.SystemID)
	if err != nil {
		return result.BadRequest("system_id: not a valid ID", "system_id: %s", err.Error())
	}
	formulaID, err := uuid.Parse(createReq.FormulaID)
	if err != nil {
		return result.BadRequest("formula_id: not a valid ID", "formula_id: %s", err.Error())
	}

	run, err := api.Backend.RunCheck(req.Context(), user.ID, systemID, formulaID, createReq.Algorithm)
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		} else if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	return result.Created(checkToModel(run), "user '%s' ran check (satisfied=%s)", user.Username, strconv.FormatBool(run.Satisfied))
}

// HTTPGetCheck returns a HandlerFunc that retrieves one check run. Only its
// owner or an admin may retrieve it.
func (api API) HTTPGetCheck() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetCheck)
}

func (api API) epGetCheck(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	c, err := api.Backend.GetCheck(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	if c.UserID != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) get check %s: forbidden", user.Username, user.Role, id)
	}

	return result.OK(checkToModel(c), "user '%s' got check %s", user.Username, id)
}

// HTTPDeleteCheck returns a HandlerFunc that deletes one check run. Only its
// owner or an admin may delete it.
func (api API) HTTPDeleteCheck() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDeleteCheck)
}

func (api API) epDeleteCheck(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	c, err := api.Backend.GetCheck(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	if c.UserID != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) delete check %s: forbidden", user.Username, user.Role, id)
	}

	if _, err := api.Backend.DeleteCheck(req.Context(), id); err != nil && !errors.Is(err, serr.ErrNotFound) {
		return result.InternalServerError("could not delete check: " + err.Error())
	}

	return result.NoContent("user '%s' successfully deleted check %s", user.Username, id)
}
