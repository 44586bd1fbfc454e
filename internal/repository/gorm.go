package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/access"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	wellWritableColumns  = []string{"name", "area", "structure", "design_depth", "offline_id", "updated_at"}
	layerWritableColumns = []string{"well_id", "depth_from", "depth_to", "thickness", "lithology", "description", "offline_id", "updated_at"}
)

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func layersByDepth(db *gorm.DB) *gorm.DB {
	return db.Order("layers.depth_from ASC")
}

func (r *GormRepository) ListWells(ctx context.Context, id access.Identity, filter WellFilter) ([]models.Well, error) {
	q := r.db.WithContext(ctx).Scopes(access.VisibleWells(id))
	if filter.Area != "" {
		q = q.Where("wells.area = ?", filter.Area)
	}
	if filter.Structure != "" {
		q = q.Where("wells.structure = ?", filter.Structure)
	}
	if filter.SyncStatus != "" {
		q = q.Where("wells.sync_status = ?", filter.SyncStatus)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("wells.name ILIKE ? OR wells.area ILIKE ?", pattern, pattern)
	}

	var wells []models.Well
	err := q.Preload("Layers", layersByDepth).
		Order("wells.created_at DESC").
		Find(&wells).Error
	if err != nil {
		return nil, fmt.Errorf("list wells: %w", err)
	}
	return wells, nil
}

func (r *GormRepository) CountWells(ctx context.Context, id access.Identity) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Well{}).
		Scopes(access.VisibleWells(id)).
		Count(&total).Error
	return total, err
}

func (r *GormRepository) GetWell(ctx context.Context, id access.Identity, wellID uuid.UUID) (*models.Well, error) {
	var well models.Well
	err := r.db.WithContext(ctx).
		Scopes(access.VisibleWells(id)).
		Preload("Layers", layersByDepth).
		First(&well, "wells.id = ?", wellID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &well, nil
}

func (r *GormRepository) WellOwner(ctx context.Context, wellID uuid.UUID) (uuid.UUID, error) {
	var owners []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.Well{}).
		Where("wells.id = ?", wellID).
		Limit(1).
		Pluck("owner_id", &owners).Error
	if err != nil {
		return uuid.Nil, err
	}
	if len(owners) == 0 {
		return uuid.Nil, ErrNotFound
	}
	return owners[0], nil
}

func (r *GormRepository) CreateWell(ctx context.Context, well *models.Well) error {
	if well.ID == uuid.Nil {
		well.ID = uuid.New()
	}
	if well.SyncStatus == "" {
		well.SyncStatus = models.SyncStatusSynced
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(well).Error; err != nil {
		return fmt.Errorf("create well: %w", err)
	}
	return nil
}

func (r *GormRepository) UpdateWell(ctx context.Context, well *models.Well) error {
	result := r.db.WithContext(ctx).Model(well).
		Select(wellWritableColumns).
		Updates(well)
	if result.Error != nil {
		return fmt.Errorf("update well: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) DeleteWell(ctx context.Context, id access.Identity, wellID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var well models.Well
		if err := tx.Scopes(access.VisibleWells(id)).First(&well, "wells.id = ?", wellID).Error; err != nil {
			return translate(err)
		}
		if err := tx.Where("well_id = ?", well.ID).Delete(&models.Layer{}).Error; err != nil {
			return fmt.Errorf("delete well layers: %w", err)
		}
		if err := tx.Delete(&well).Error; err != nil {
			return fmt.Errorf("delete well: %w", err)
		}
		return nil
	})
}

func (r *GormRepository) ListLayers(ctx context.Context, id access.Identity, filter LayerFilter) ([]models.Layer, error) {
	q := r.db.WithContext(ctx).Scopes(access.VisibleLayers(id))
	if filter.WellID != nil {
		q = q.Where("layers.well_id = ?", *filter.WellID)
	}
	if filter.Lithology != "" {
		q = q.Where("layers.lithology = ?", filter.Lithology)
	}

	var layers []models.Layer
	if err := q.Order("layers.well_id, layers.depth_from ASC").Find(&layers).Error; err != nil {
		return nil, fmt.Errorf("list layers: %w", err)
	}
	return layers, nil
}

func (r *GormRepository) GetLayer(ctx context.Context, id access.Identity, layerID uuid.UUID) (*models.Layer, error) {
	var layer models.Layer
	err := r.db.WithContext(ctx).
		Scopes(access.VisibleLayers(id)).
		First(&layer, "layers.id = ?", layerID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &layer, nil
}

func (r *GormRepository) CreateLayer(ctx context.Context, layer *models.Layer) error {
	if layer.ID == uuid.Nil {
		layer.ID = uuid.New()
	}
	if layer.SyncStatus == "" {
		layer.SyncStatus = models.SyncStatusSynced
	}
	layer.DeriveThickness()
	if err := r.db.WithContext(ctx).Create(layer).Error; err != nil {
		return fmt.Errorf("create layer: %w", err)
	}
	return nil
}

func (r *GormRepository) UpdateLayer(ctx context.Context, layer *models.Layer) error {
	layer.DeriveThickness()
	result := r.db.WithContext(ctx).Model(layer).
		Select(layerWritableColumns).
		Updates(layer)
	if result.Error != nil {
		return fmt.Errorf("update layer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) DeleteLayer(ctx context.Context, id access.Identity, layerID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Scopes(access.VisibleLayers(id)).
		Where("layers.id = ?", layerID).
		Delete(&models.Layer{})
	if result.Error != nil {
		return fmt.Errorf("delete layer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
