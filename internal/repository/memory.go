package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/access"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps wells and layers in process memory. It honours the
// same scoping, ordering and cascade rules as GormRepository.
type MemoryRepository struct {
	mu     sync.RWMutex
	wells  map[uuid.UUID]models.Well
	layers map[uuid.UUID]models.Layer
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		wells:  make(map[uuid.UUID]models.Well),
		layers: make(map[uuid.UUID]models.Layer),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepository) Ping(context.Context) error { return nil }

func (r *MemoryRepository) ListWells(_ context.Context, id access.Identity, filter WellFilter) ([]models.Well, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	wells := make([]models.Well, 0)
	for _, w := range r.wells {
		if !id.CanSee(w.OwnerID) {
			continue
		}
		if filter.Area != "" && w.Area != filter.Area {
			continue
		}
		if filter.Structure != "" && w.Structure != filter.Structure {
			continue
		}
		if filter.SyncStatus != "" && string(w.SyncStatus) != filter.SyncStatus {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(w.Name), search) &&
			!strings.Contains(strings.ToLower(w.Area), search) {
			continue
		}
		w.Layers = r.layersOf(w.ID)
		wells = append(wells, w)
	}

	sort.SliceStable(wells, func(i, j int) bool {
		return wells[i].CreatedAt.After(wells[j].CreatedAt)
	})
	return wells, nil
}

func (r *MemoryRepository) CountWells(_ context.Context, id access.Identity) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, w := range r.wells {
		if id.CanSee(w.OwnerID) {
			total++
		}
	}
	return total, nil
}

func (r *MemoryRepository) GetWell(_ context.Context, id access.Identity, wellID uuid.UUID) (*models.Well, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.wells[wellID]
	if !ok || !id.CanSee(w.OwnerID) {
		return nil, ErrNotFound
	}
	w.Layers = r.layersOf(w.ID)
	return &w, nil
}

func (r *MemoryRepository) WellOwner(_ context.Context, wellID uuid.UUID) (uuid.UUID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.wells[wellID]
	if !ok {
		return uuid.Nil, ErrNotFound
	}
	return w.OwnerID, nil
}

func (r *MemoryRepository) CreateWell(_ context.Context, well *models.Well) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if well.ID == uuid.Nil {
		well.ID = uuid.New()
	}
	if well.SyncStatus == "" {
		well.SyncStatus = models.SyncStatusSynced
	}
	now := r.now()
	well.CreatedAt = now
	well.UpdatedAt = now

	stored := *well
	stored.Layers = nil
	r.wells[well.ID] = stored
	return nil
}

func (r *MemoryRepository) UpdateWell(_ context.Context, well *models.Well) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.wells[well.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Name = well.Name
	stored.Area = well.Area
	stored.Structure = well.Structure
	stored.DesignDepth = well.DesignDepth
	stored.OfflineID = well.OfflineID
	stored.UpdatedAt = r.now()
	r.wells[well.ID] = stored

	well.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *MemoryRepository) DeleteWell(_ context.Context, id access.Identity, wellID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.wells[wellID]
	if !ok || !id.CanSee(w.OwnerID) {
		return ErrNotFound
	}
	for layerID, l := range r.layers {
		if l.WellID == wellID {
			delete(r.layers, layerID)
		}
	}
	delete(r.wells, wellID)
	return nil
}

func (r *MemoryRepository) ListLayers(_ context.Context, id access.Identity, filter LayerFilter) ([]models.Layer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	layers := make([]models.Layer, 0)
	for _, l := range r.layers {
		if !r.layerVisible(id, l) {
			continue
		}
		if filter.WellID != nil && l.WellID != *filter.WellID {
			continue
		}
		if filter.Lithology != "" && string(l.Lithology) != filter.Lithology {
			continue
		}
		layers = append(layers, l)
	}

	sort.SliceStable(layers, func(i, j int) bool {
		if layers[i].WellID != layers[j].WellID {
			return layers[i].WellID.String() < layers[j].WellID.String()
		}
		return layers[i].DepthFrom < layers[j].DepthFrom
	})
	return layers, nil
}

func (r *MemoryRepository) GetLayer(_ context.Context, id access.Identity, layerID uuid.UUID) (*models.Layer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.layers[layerID]
	if !ok || !r.layerVisible(id, l) {
		return nil, ErrNotFound
	}
	return &l, nil
}

func (r *MemoryRepository) CreateLayer(_ context.Context, layer *models.Layer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.wells[layer.WellID]; !ok {
		return ErrNotFound
	}
	if layer.ID == uuid.Nil {
		layer.ID = uuid.New()
	}
	if layer.SyncStatus == "" {
		layer.SyncStatus = models.SyncStatusSynced
	}
	layer.DeriveThickness()
	now := r.now()
	layer.CreatedAt = now
	layer.UpdatedAt = now

	r.layers[layer.ID] = *layer
	return nil
}

func (r *MemoryRepository) UpdateLayer(_ context.Context, layer *models.Layer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.layers[layer.ID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := r.wells[layer.WellID]; !ok {
		return ErrNotFound
	}
	layer.DeriveThickness()
	layer.CreatedAt = stored.CreatedAt
	layer.SyncStatus = stored.SyncStatus
	layer.UpdatedAt = r.now()

	r.layers[layer.ID] = *layer
	return nil
}

func (r *MemoryRepository) DeleteLayer(_ context.Context, id access.Identity, layerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.layers[layerID]
	if !ok || !r.layerVisible(id, l) {
		return ErrNotFound
	}
	delete(r.layers, layerID)
	return nil
}

// layersOf returns the layers of a well by ascending depth. Callers hold mu.
func (r *MemoryRepository) layersOf(wellID uuid.UUID) []models.Layer {
	layers := make([]models.Layer, 0)
	for _, l := range r.layers {
		if l.WellID == wellID {
			layers = append(layers, l)
		}
	}
	sort.SliceStable(layers, func(i, j int) bool {
		return layers[i].DepthFrom < layers[j].DepthFrom
	})
	return layers
}

func (r *MemoryRepository) layerVisible(id access.Identity, l models.Layer) bool {
	w, ok := r.wells[l.WellID]
	return ok && id.CanSee(w.OwnerID)
}
