package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/models"
	"github.com/google/uuid"
)

// LayerRequest carries the client-writable layer attributes. Thickness is
// derived and never read from the body.
type LayerRequest struct {
	Well        *string  `json:"well"`
	DepthFrom   *float64 `json:"depth_from"`
	DepthTo     *float64 `json:"depth_to"`
	Lithology   *string  `json:"lithology"`
	Description *string  `json:"description"`
	OfflineID   *string  `json:"offline_id"`
}

// Apply copies supplied fields onto l with the same full/partial semantics as
// WellRequest.Apply.
func (r LayerRequest) Apply(l *models.Layer, full bool) error {
	verr := models.NewValidationError()
	if full {
		if r.Well == nil {
			verr.Add("well", models.MsgRequired)
		}
		if r.DepthFrom == nil {
			verr.Add("depth_from", models.MsgRequired)
		}
		if r.DepthTo == nil {
			verr.Add("depth_to", models.MsgRequired)
		}
		if r.Lithology == nil {
			verr.Add("lithology", models.MsgRequired)
		}
	}

	if r.Well != nil {
		wellID, err := uuid.Parse(*r.Well)
		if err != nil {
			verr.Add("well", models.MsgInvalidID)
		} else {
			l.WellID = wellID
		}
	}
	if r.DepthFrom != nil {
		l.DepthFrom = *r.DepthFrom
	}
	if r.DepthTo != nil {
		l.DepthTo = *r.DepthTo
	}
	if r.Lithology != nil {
		l.Lithology = models.Lithology(*r.Lithology)
	}
	if r.Description != nil {
		l.Description = *r.Description
	}
	if r.OfflineID != nil {
		l.OfflineID = normalizeOfflineID(*r.OfflineID)
	}

	if verr.HasErrors() {
		return verr
	}
	return l.Validate()
}

// WellRef returns the parsed well reference, or false when the request does
// not name one.
func (r LayerRequest) WellRef() (uuid.UUID, bool) {
	if r.Well == nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(*r.Well)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

type LayerResponse struct {
	ID               uuid.UUID `json:"id"`
	Well             uuid.UUID `json:"well"`
	DepthFrom        float64   `json:"depth_from"`
	DepthTo          float64   `json:"depth_to"`
	Thickness        float64   `json:"thickness"`
	Lithology        string    `json:"lithology"`
	LithologyDisplay string    `json:"lithology_display"`
	Description      string    `json:"description"`
	OfflineID        *string   `json:"offline_id"`
	SyncStatus       string    `json:"sync_status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewLayerResponse(l *models.Layer) LayerResponse {
	return LayerResponse{
		ID:               l.ID,
		Well:             l.WellID,
		DepthFrom:        l.DepthFrom,
		DepthTo:          l.DepthTo,
		Thickness:        l.Thickness,
		Lithology:        string(l.Lithology),
		LithologyDisplay: l.Lithology.Display(),
		Description:      l.Description,
		OfflineID:        l.OfflineID,
		SyncStatus:       string(l.SyncStatus),
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

func NewLayerResponses(layers []models.Layer) []LayerResponse {
	out := make([]LayerResponse, 0, len(layers))
	for i := range layers {
		out = append(out, NewLayerResponse(&layers[i]))
	}
	return out
}
