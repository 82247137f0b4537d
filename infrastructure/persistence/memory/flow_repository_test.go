package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domaincfg "fluxo-backend/domain/config"
	"fluxo-backend/domain/flow"
	apperrors "fluxo-backend/pkg/errors"
)

func newRepo() *FlowRepository {
	return NewFlowRepository(flow.NewUUIDSource(), *domaincfg.DefaultDomainConfig())
}

func newSavedFlow(t *testing.T, repo *FlowRepository, userID string) *flow.Flow {
	t.Helper()
	f, err := flow.NewFlow(userID, "Fluxo de teste", flow.NewUUIDSource(), *domaincfg.DefaultDomainConfig())
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), f))
	return f
}

func TestSaveAndFindByID(t *testing.T) {
	repo := newRepo()
	f := newSavedFlow(t, repo, "user-1")

	node, err := f.AddNode(flow.NodeTypeMessage, "Boas-vindas", flow.Position{X: 10, Y: 20})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), f))

	loaded, err := repo.FindByID(context.Background(), f.ID().String())
	require.NoError(t, err)
	assert.Equal(t, f.Name(), loaded.Name())
	assert.Equal(t, 1, loaded.NodeCount())

	got, exists := loaded.Node(node.ID().String())
	require.True(t, exists)
	assert.Equal(t, flow.Position{X: 10, Y: 20}, got.Position())
}

func TestFindByIDNotFound(t *testing.T) {
	repo := newRepo()
	_, err := repo.FindByID(context.Background(), "ghost")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFindByUser(t *testing.T) {
	repo := newRepo()
	newSavedFlow(t, repo, "user-1")
	newSavedFlow(t, repo, "user-1")
	newSavedFlow(t, repo, "user-2")

	mine, err := repo.FindByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := repo.FindByUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDelete(t *testing.T) {
	repo := newRepo()
	f := newSavedFlow(t, repo, "user-1")

	require.NoError(t, repo.Delete(context.Background(), f.ID().String()))
	_, err := repo.FindByID(context.Background(), f.ID().String())
	assert.True(t, apperrors.IsNotFound(err))

	// idempotent
	assert.NoError(t, repo.Delete(context.Background(), f.ID().String()))
}

func TestSavedStateSurvivesMutationOfTheOriginal(t *testing.T) {
	repo := newRepo()
	f := newSavedFlow(t, repo, "user-1")

	_, err := f.AddNode(flow.NodeTypeMessage, "depois do save", flow.Position{})
	require.NoError(t, err)

	loaded, err := repo.FindByID(context.Background(), f.ID().String())
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.NodeCount())
}
