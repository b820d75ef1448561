package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dekarrin/muchk/internal/cache"
	"github.com/dekarrin/muchk/server/dao"
	"github.com/dekarrin/muchk/server/dao/inmem"
	"github.com/dekarrin/muchk/server/middle"
	"github.com/dekarrin/muchk/server/tunas"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T) API {
	t.Helper()
	cacheDir, err := cache.Open(t.TempDir())
	require.NoError(t, err)

	return API{
		Backend: tunas.Service{DB: inmem.NewDatastore(), SystemCache: cacheDir},
		Secret:  []byte("test-secret-test-secret-test-secret"),
	}
}

// withIDParam attaches a chi "id" URL parameter and an authenticated user to
// req's context, the way the router's middleware chain would before an
// epUpdateUser-family handler runs.
func withIDParam(req *http.Request, id string, authUser dao.User) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)

	ctx := req.Context()
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middle.AuthUser, authUser)
	ctx = context.WithValue(ctx, middle.AuthLoggedIn, true)
	return req.WithContext(ctx)
}

func Test_API_epUpdateUser_passwordChangeSucceeds(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()

	existing, err := api.Backend.CreateUser(ctx, "alice", "old-password", "", dao.Admin)
	require.NoError(t, err)

	body, err := json.Marshal(UserUpdateRequest{
		Password: UpdateString{Update: true, Value: "new-password"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/"+existing.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withIDParam(req, existing.ID.String(), existing)

	res := api.epUpdateUser(req)

	require.False(t, res.IsErr, "expected successful update, got internal msg: %s", res.InternalMsg)
	assert.Equal(t, http.StatusCreated, res.Status)

	updated, err := api.Backend.GetUser(ctx, existing.ID.String())
	require.NoError(t, err)
	assert.NotEqual(t, existing.Password, updated.Password, "password hash should have changed")
}

func Test_API_epUpdateUser_passwordChangeRejectsBadID(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()

	existing, err := api.Backend.CreateUser(ctx, "bob", "old-password", "", dao.Admin)
	require.NoError(t, err)

	body, err := json.Marshal(UserUpdateRequest{
		Username: UpdateString{Update: true, Value: "bob-renamed"},
		Password: UpdateString{Update: true, Value: "new-password"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/"+existing.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withIDParam(req, existing.ID.String(), existing)

	res := api.epUpdateUser(req)

	require.False(t, res.IsErr, "expected successful update, got internal msg: %s", res.InternalMsg)

	updated, err := api.Backend.GetUser(ctx, existing.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "bob-renamed", updated.Username)
	assert.NotEqual(t, existing.Password, updated.Password)
}
