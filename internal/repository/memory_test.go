package repository

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/access"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedWell(t *testing.T, repo *MemoryRepository, owner uuid.UUID, name string) *models.Well {
	t.Helper()
	w := &models.Well{Name: name, Area: "North", Structure: "Bridge", DesignDepth: 30, OwnerID: owner}
	require.NoError(t, repo.CreateWell(context.Background(), w))
	return w
}

func seedLayer(t *testing.T, repo *MemoryRepository, wellID uuid.UUID, from, to float64) *models.Layer {
	t.Helper()
	l := &models.Layer{WellID: wellID, DepthFrom: from, DepthTo: to, Lithology: models.LithologySand}
	require.NoError(t, repo.CreateLayer(context.Background(), l))
	return l
}

func TestMemoryRepository_ScopesByOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	alice := access.Identity{UserID: uuid.New()}
	bob := access.Identity{UserID: uuid.New()}
	admin := access.Identity{UserID: uuid.New(), Superuser: true}

	aw := seedWell(t, repo, alice.UserID, "A-1")
	seedWell(t, repo, bob.UserID, "B-1")
	al := seedLayer(t, repo, aw.ID, 0, 1)

	wells, err := repo.ListWells(ctx, alice, WellFilter{})
	require.NoError(t, err)
	require.Len(t, wells, 1)
	assert.Equal(t, "A-1", wells[0].Name)

	all, err := repo.ListWells(ctx, admin, WellFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = repo.GetWell(ctx, bob, aw.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetLayer(ctx, bob, al.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.DeleteLayer(ctx, bob, al.ID), ErrNotFound)
	assert.ErrorIs(t, repo.DeleteWell(ctx, bob, aw.ID), ErrNotFound)

	bobLayers, err := repo.ListLayers(ctx, bob, LayerFilter{})
	require.NoError(t, err)
	assert.Empty(t, bobLayers)

	n, err := repo.CountWells(ctx, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestMemoryRepository_DeleteWellCascades(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	owner := access.Identity{UserID: uuid.New()}

	w := seedWell(t, repo, owner.UserID, "W")
	seedLayer(t, repo, w.ID, 0, 1)
	seedLayer(t, repo, w.ID, 1, 2)
	other := seedWell(t, repo, owner.UserID, "Other")
	kept := seedLayer(t, repo, other.ID, 0, 3)

	require.NoError(t, repo.DeleteWell(ctx, owner, w.ID))

	layers, err := repo.ListLayers(ctx, access.Identity{Superuser: true}, LayerFilter{})
	require.NoError(t, err)
	require.Len(t, layers, 1)
	assert.Equal(t, kept.ID, layers[0].ID)
}

func TestMemoryRepository_LayersOrderedByDepth(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	owner := access.Identity{UserID: uuid.New()}

	w := seedWell(t, repo, owner.UserID, "W")
	seedLayer(t, repo, w.ID, 4, 6)
	seedLayer(t, repo, w.ID, 0, 1.2)
	seedLayer(t, repo, w.ID, 1.2, 4)

	got, err := repo.GetWell(ctx, owner, w.ID)
	require.NoError(t, err)
	require.Len(t, got.Layers, 3)
	assert.Equal(t, []float64{0, 1.2, 4}, []float64{got.Layers[0].DepthFrom, got.Layers[1].DepthFrom, got.Layers[2].DepthFrom})

	layers, err := repo.ListLayers(ctx, owner, LayerFilter{WellID: &w.ID})
	require.NoError(t, err)
	assert.Equal(t, 0.0, layers[0].DepthFrom)
	assert.Equal(t, 4.0, layers[2].DepthFrom)
}

func TestMemoryRepository_LayerWritesDeriveThickness(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	owner := access.Identity{UserID: uuid.New()}
	w := seedWell(t, repo, owner.UserID, "W")

	l := &models.Layer{WellID: w.ID, DepthFrom: 0, DepthTo: 1.5, Thickness: 42, Lithology: models.LithologySand}
	require.NoError(t, repo.CreateLayer(ctx, l))
	assert.Equal(t, 1.5, l.Thickness)
	assert.Equal(t, models.SyncStatusSynced, l.SyncStatus)

	l.DepthTo = 0.75
	l.Thickness = 42
	require.NoError(t, repo.UpdateLayer(ctx, l))

	stored, err := repo.GetLayer(ctx, owner, l.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.75, stored.Thickness)
}

func TestMemoryRepository_CreateLayerRequiresWell(t *testing.T) {
	repo := NewMemoryRepository()
	err := repo.CreateLayer(context.Background(), &models.Layer{WellID: uuid.New(), Lithology: models.LithologyPeat})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepository_WellFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	owner := access.Identity{UserID: uuid.New()}

	seedWell(t, repo, owner.UserID, "Alpha")
	south := &models.Well{Name: "Beta", Area: "South", Structure: "Tower", DesignDepth: 10, OwnerID: owner.UserID}
	require.NoError(t, repo.CreateWell(ctx, south))

	wells, err := repo.ListWells(ctx, owner, WellFilter{Area: "South"})
	require.NoError(t, err)
	require.Len(t, wells, 1)
	assert.Equal(t, "Beta", wells[0].Name)

	wells, err = repo.ListWells(ctx, owner, WellFilter{Search: "alp"})
	require.NoError(t, err)
	require.Len(t, wells, 1)
	assert.Equal(t, "Alpha", wells[0].Name)

	wells, err = repo.ListWells(ctx, owner, WellFilter{SyncStatus: "pending"})
	require.NoError(t, err)
	assert.Empty(t, wells)
}
