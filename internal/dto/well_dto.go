package dto

import (
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/models"
	"github.com/google/uuid"
)

// WellRequest carries the client-writable well attributes. Owner, sync
// status and timestamps are absent on purpose: they are always set by the
// server.
type WellRequest struct {
	Name        *string  `json:"name"`
	Area        *string  `json:"area"`
	Structure   *string  `json:"structure"`
	DesignDepth *float64 `json:"design_depth"`
	OfflineID   *string  `json:"offline_id"`
}

// Apply copies supplied fields onto w. With full set, every required field
// must be present (create and PUT); otherwise only supplied fields change
// (PATCH).
func (r WellRequest) Apply(w *models.Well, full bool) error {
	verr := models.NewValidationError()
	if full {
		if r.Name == nil {
			verr.Add("name", models.MsgRequired)
		}
		if r.Area == nil {
			verr.Add("area", models.MsgRequired)
		}
		if r.Structure == nil {
			verr.Add("structure", models.MsgRequired)
		}
		if r.DesignDepth == nil {
			verr.Add("design_depth", models.MsgRequired)
		}
	}

	if r.Name != nil {
		w.Name = strings.TrimSpace(*r.Name)
	}
	if r.Area != nil {
		w.Area = strings.TrimSpace(*r.Area)
	}
	if r.Structure != nil {
		w.Structure = strings.TrimSpace(*r.Structure)
	}
	if r.DesignDepth != nil {
		w.DesignDepth = *r.DesignDepth
	}
	if r.OfflineID != nil {
		w.OfflineID = normalizeOfflineID(*r.OfflineID)
	}

	if verr.HasErrors() {
		return verr
	}
	return w.Validate()
}

func normalizeOfflineID(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

type WellResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Area        string          `json:"area"`
	Structure   string          `json:"structure"`
	DesignDepth float64         `json:"design_depth"`
	OfflineID   *string         `json:"offline_id"`
	SyncStatus  string          `json:"sync_status"`
	Owner       uuid.UUID       `json:"owner"`
	Layers      []LayerResponse `json:"layers"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func NewWellResponse(w *models.Well) WellResponse {
	return WellResponse{
		ID:          w.ID,
		Name:        w.Name,
		Area:        w.Area,
		Structure:   w.Structure,
		DesignDepth: w.DesignDepth,
		OfflineID:   w.OfflineID,
		SyncStatus:  string(w.SyncStatus),
		Owner:       w.OwnerID,
		Layers:      NewLayerResponses(w.Layers),
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func NewWellResponses(wells []models.Well) []WellResponse {
	out := make([]WellResponse, 0, len(wells))
	for i := range wells {
		out = append(out, NewWellResponse(&wells[i]))
	}
	return out
}
