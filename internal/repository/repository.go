// Package repository persists wells and layers. Every read and every
// destructive write is scoped by the caller's access.Identity, and every layer
// write derives thickness before the row is stored.
package repository

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/access"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/models"
	"github.com/google/uuid"
)

// ErrNotFound covers both absent rows and rows outside the caller's visible
// set.
var ErrNotFound = errors.New("record not found")

type WellFilter struct {
	Area       string
	Structure  string
	SyncStatus string
	// Search is a case-insensitive substring matched against name and area.
	Search string
}

type LayerFilter struct {
	WellID    *uuid.UUID
	Lithology string
}

type Repository interface {
	Ping(ctx context.Context) error

	// ListWells returns visible wells with their layers ordered by depth.
	ListWells(ctx context.Context, id access.Identity, filter WellFilter) ([]models.Well, error)
	CountWells(ctx context.Context, id access.Identity) (int64, error)
	GetWell(ctx context.Context, id access.Identity, wellID uuid.UUID) (*models.Well, error)
	// WellOwner looks up a well's owner without visibility scoping. It backs
	// layer write authorization only.
	WellOwner(ctx context.Context, wellID uuid.UUID) (uuid.UUID, error)
	CreateWell(ctx context.Context, well *models.Well) error
	UpdateWell(ctx context.Context, well *models.Well) error
	// DeleteWell removes a visible well together with all of its layers.
	DeleteWell(ctx context.Context, id access.Identity, wellID uuid.UUID) error

	// ListLayers returns visible layers ordered by well then depth.
	ListLayers(ctx context.Context, id access.Identity, filter LayerFilter) ([]models.Layer, error)
	GetLayer(ctx context.Context, id access.Identity, layerID uuid.UUID) (*models.Layer, error)
	CreateLayer(ctx context.Context, layer *models.Layer) error
	UpdateLayer(ctx context.Context, layer *models.Layer) error
	DeleteLayer(ctx context.Context, id access.Identity, layerID uuid.UUID) error
}
