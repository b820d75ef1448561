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

func formulaToModel(f dao.Formula) FormulaModel {
	return FormulaModel{
		URI:      PathPrefix + "/formulas/" + f.ID.String(),
		ID:       f.ID.String(),
		Name:     f.Name,
		Source:   f.Source,
		Created:  f.Created.Format(time.RFC3339),
		Modified: f.Modified.Format(time.RFC3339),
	}
}

// HTTPGetAllFormulas returns a HandlerFunc that lists the formulas owned by
// the logged-in user. Admins may list every formula.
func (api API) HTTPGetAllFormulas() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetAllFormulas)
}

func (api API) epGetAllFormulas(req *http.Request) result.Result {
	user := req.Context().Value(middle.AuthUser).(dao.User)

	var formulas []dao.Formula
	var err error
	if user.Role == dao.Admin {
		formulas, err = api.Backend.GetAllFormulas(req.Context())
	} else {
		formulas, err = api.Backend.GetAllFormulasByUser(req.Context(), user.ID)
	}
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]FormulaModel, len(formulas))
	for i := range formulas {
		resp[i] = formulaToModel(formulas[i])
	}

	return result.OK(resp, "user '%s' got all formulas", user.Username)
}

// HTTPCreateFormula returns a HandlerFunc that uploads a new named
// mu-calculus formula.
func (api API) HTTPCreateFormula() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateFormula)
}

func (api API) epCreateFormula(req *http.Request) result.Result {
	user := req.Context().Value(middle.AuthUser).(dao.User)

	var createReq FormulaModel
	if err := parseJSON(req, &createReq); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	f, err := api.Backend.CreateFormula(req.Context(), user.ID, createReq.Name, createReq.Source)
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.Created(formulaToModel(f), "user '%s' created formula '%s'", user.Username, f.Name)
}

// HTTPGetFormula returns a HandlerFunc that retrieves one formula. Only its
// owner or an admin may retrieve it.
func (api API) HTTPGetFormula() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetFormula)
}

func (api API) epGetFormula(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	f, err := api.Backend.GetFormula(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	if f.UserID != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) get formula %s: forbidden", user.Username, user.Role, id)
	}

	return result.OK(formulaToModel(f), "user '%s' got formula '%s'", user.Username, f.Name)
}

// HTTPDeleteFormula returns a HandlerFunc that deletes one formula. Only its
// owner or an admin may delete it.
func (api API) HTTPDeleteFormula() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDeleteFormula)
}

func (api API) epDeleteFormula(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	f, err := api.Backend.GetFormula(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	if f.UserID != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) delete formula %s: forbidden", user.Username, user.Role, id)
	}

	deleted, err := api.Backend.DeleteFormula(req.Context(), id)
	if err != nil && !errors.Is(err, serr.ErrNotFound) {
		return result.InternalServerError("could not delete formula: " + err.Error())
	}

	return result.NoContent("user '%s' successfully deleted formula '%s'", user.Username, deleted.Name)
}
