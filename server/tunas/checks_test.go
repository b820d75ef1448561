package tunas

import (
	"context"
	"testing"

	"github.com/dekarrin/muchk/internal/cache"
	"github.com/dekarrin/muchk/server/dao/inmem"
	"github.com/dekarrin/muchk/server/serr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	cacheDir, err := cache.Open(t.TempDir())
	require.NoError(t, err)
	return Service{DB: inmem.NewDatastore(), SystemCache: cacheDir}
}

const oneStateLTS = "des (0, 1, 2)\n(0, \"a\", 1)\n"

func Test_Service_RunCheck_satisfiedFormula(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	sys, err := svc.CreateSystem(ctx, owner, "one-step", oneStateLTS)
	require.NoError(t, err)

	f, err := svc.CreateFormula(ctx, owner, "has-a-successor", "<a>true")
	require.NoError(t, err)

	run, err := svc.RunCheck(ctx, owner, sys.ID, f.ID, "")
	require.NoError(t, err)
	assert.True(t, run.Satisfied)
	assert.Equal(t, "emerson-lei", run.Algorithm)
}

func Test_Service_RunCheck_naiveAndEmersonLeiAgree(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	sys, err := svc.CreateSystem(ctx, owner, "one-step", oneStateLTS)
	require.NoError(t, err)
	f, err := svc.CreateFormula(ctx, owner, "has-a-successor", "<a>true")
	require.NoError(t, err)

	naiveRun, err := svc.RunCheck(ctx, owner, sys.ID, f.ID, "naive")
	require.NoError(t, err)
	elRun, err := svc.RunCheck(ctx, owner, sys.ID, f.ID, "emerson-lei")
	require.NoError(t, err)

	assert.Equal(t, naiveRun.Satisfied, elRun.Satisfied)
}

func Test_Service_RunCheck_unknownAlgorithm(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	sys, err := svc.CreateSystem(ctx, owner, "one-step", oneStateLTS)
	require.NoError(t, err)
	f, err := svc.CreateFormula(ctx, owner, "has-a-successor", "<a>true")
	require.NoError(t, err)

	_, err = svc.RunCheck(ctx, owner, sys.ID, f.ID, "bogus")
	assert.ErrorIs(t, err, serr.ErrBadArgument)
}

func Test_Service_RunCheck_unknownSystem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	f, err := svc.CreateFormula(ctx, owner, "has-a-successor", "<a>true")
	require.NoError(t, err)

	_, err = svc.RunCheck(ctx, owner, uuid.New(), f.ID, "")
	assert.ErrorIs(t, err, serr.ErrNotFound)
}

func Test_Service_CreateSystem_rejectsMalformedSource(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	_, err := svc.CreateSystem(ctx, owner, "broken", "not a valid aldebaran file")
	assert.ErrorIs(t, err, serr.ErrBadArgument)
}

func Test_Service_DeleteCheck_removesIt(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	sys, err := svc.CreateSystem(ctx, owner, "one-step", oneStateLTS)
	require.NoError(t, err)
	f, err := svc.CreateFormula(ctx, owner, "has-a-successor", "<a>true")
	require.NoError(t, err)
	run, err := svc.RunCheck(ctx, owner, sys.ID, f.ID, "")
	require.NoError(t, err)

	_, err = svc.DeleteCheck(ctx, run.ID)
	require.NoError(t, err)

	_, err = svc.GetCheck(ctx, run.ID)
	assert.ErrorIs(t, err, serr.ErrNotFound)
}
