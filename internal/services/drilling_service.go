package services

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/access"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/dto"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/models"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrWellNotFound  = errors.New("well not found")
	ErrLayerNotFound = errors.New("layer not found")
)

type DrillingService struct {
	repo repository.Repository
}

func NewDrillingService(repo repository.Repository) *DrillingService {
	return &DrillingService{repo: repo}
}

func (s *DrillingService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// --- wells ---

func (s *DrillingService) ListWells(ctx context.Context, id access.Identity, filter repository.WellFilter) ([]models.Well, error) {
	return s.repo.ListWells(ctx, id, filter)
}

func (s *DrillingService) CountWells(ctx context.Context, id access.Identity) (int64, error) {
	return s.repo.CountWells(ctx, id)
}

func (s *DrillingService) GetWell(ctx context.Context, id access.Identity, wellID uuid.UUID) (*models.Well, error) {
	well, err := s.repo.GetWell(ctx, id, wellID)
	if err != nil {
		return nil, wellErr(err)
	}
	return well, nil
}

// CreateWell stores a new well owned by the caller. Ownership and sync status
// are never taken from the request.
func (s *DrillingService) CreateWell(ctx context.Context, id access.Identity, req dto.WellRequest) (*models.Well, error) {
	well := models.Well{
		ID:         uuid.New(),
		OwnerID:    id.UserID,
		SyncStatus: models.SyncStatusSynced,
	}
	if err := req.Apply(&well, true); err != nil {
		return nil, err
	}

	if err := s.repo.CreateWell(ctx, &well); err != nil {
		return nil, err
	}
	well.Layers = []models.Layer{}
	metrics.RecordWrite("well", "create")
	return &well, nil
}

// UpdateWell applies a full (PUT) or partial (PATCH) update to a visible well.
func (s *DrillingService) UpdateWell(ctx context.Context, id access.Identity, wellID uuid.UUID, req dto.WellRequest, partial bool) (*models.Well, error) {
	well, err := s.repo.GetWell(ctx, id, wellID)
	if err != nil {
		return nil, wellErr(err)
	}
	if err := req.Apply(well, !partial); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateWell(ctx, well); err != nil {
		return nil, wellErr(err)
	}
	metrics.RecordWrite("well", "update")
	return well, nil
}

func (s *DrillingService) DeleteWell(ctx context.Context, id access.Identity, wellID uuid.UUID) error {
	if err := s.repo.DeleteWell(ctx, id, wellID); err != nil {
		return wellErr(err)
	}
	metrics.RecordWrite("well", "delete")
	return nil
}

// --- layers ---

func (s *DrillingService) ListLayers(ctx context.Context, id access.Identity, filter repository.LayerFilter) ([]models.Layer, error) {
	return s.repo.ListLayers(ctx, id, filter)
}

// WellLayers returns the layers of one well intersected with the caller's
// visible set, ordered by depth. An invisible well yields an empty list.
func (s *DrillingService) WellLayers(ctx context.Context, id access.Identity, wellID uuid.UUID) ([]models.Layer, error) {
	return s.repo.ListLayers(ctx, id, repository.LayerFilter{WellID: &wellID})
}

func (s *DrillingService) GetLayer(ctx context.Context, id access.Identity, layerID uuid.UUID) (*models.Layer, error) {
	layer, err := s.repo.GetLayer(ctx, id, layerID)
	if err != nil {
		return nil, layerErr(err)
	}
	return layer, nil
}

// CreateLayer attaches a layer to a well owned by the caller. Thickness is
// derived by the repository.
func (s *DrillingService) CreateLayer(ctx context.Context, id access.Identity, req dto.LayerRequest) (*models.Layer, error) {
	layer := models.Layer{
		ID:         uuid.New(),
		SyncStatus: models.SyncStatusSynced,
	}
	if err := req.Apply(&layer, true); err != nil {
		return nil, err
	}
	if err := s.authorizeWell(ctx, id, layer.WellID); err != nil {
		return nil, err
	}

	if err := s.repo.CreateLayer(ctx, &layer); err != nil {
		return nil, wellRefErr(err)
	}
	metrics.RecordWrite("layer", "create")
	return &layer, nil
}

// UpdateLayer applies a full or partial update to a visible layer. Moving a
// layer to another well requires write access to the target well.
func (s *DrillingService) UpdateLayer(ctx context.Context, id access.Identity, layerID uuid.UUID, req dto.LayerRequest, partial bool) (*models.Layer, error) {
	layer, err := s.repo.GetLayer(ctx, id, layerID)
	if err != nil {
		return nil, layerErr(err)
	}
	currentWell := layer.WellID

	if err := req.Apply(layer, !partial); err != nil {
		return nil, err
	}
	if layer.WellID != currentWell {
		if err := s.authorizeWell(ctx, id, layer.WellID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateLayer(ctx, layer); err != nil {
		return nil, layerErr(err)
	}
	metrics.RecordWrite("layer", "update")
	return layer, nil
}

func (s *DrillingService) DeleteLayer(ctx context.Context, id access.Identity, layerID uuid.UUID) error {
	if err := s.repo.DeleteLayer(ctx, id, layerID); err != nil {
		return layerErr(err)
	}
	metrics.RecordWrite("layer", "delete")
	return nil
}

func (s *DrillingService) authorizeWell(ctx context.Context, id access.Identity, wellID uuid.UUID) error {
	owner, err := s.repo.WellOwner(ctx, wellID)
	if err != nil {
		return wellRefErr(err)
	}
	return access.AuthorizeLayerWrite(id, owner)
}

func wellErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrWellNotFound
	}
	return err
}

func layerErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrLayerNotFound
	}
	return err
}

// wellRefErr reports a dangling well reference in a layer body as a field error.
func wellRefErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return models.FieldError("well", "Well does not exist.")
	}
	return err
}
