package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type Layer struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WellID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_layers_well_depth,priority:1" json:"well"`
	DepthFrom   float64    `gorm:"not null;index:idx_layers_well_depth,priority:2" json:"depth_from"`
	DepthTo     float64    `gorm:"not null" json:"depth_to"`
	Thickness   float64    `gorm:"not null" json:"thickness"`
	Lithology   Lithology  `gorm:"size:20;not null" json:"lithology"`
	Description string     `gorm:"type:text" json:"description"`
	OfflineID   *string    `gorm:"size:100;index" json:"offline_id"`
	SyncStatus  SyncStatus `gorm:"size:20;not null;default:'synced'" json:"sync_status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Layer) TableName() string { return "layers" }

// LayerThickness derives the thickness of an interval, rounded to two
// decimals with halves rounded away from zero. Inverted intervals yield a
// negative thickness and are not rejected.
func LayerThickness(depthFrom, depthTo float64) float64 {
	return math.Round((depthTo-depthFrom)*100) / 100
}

// DeriveThickness overwrites Thickness from the current depth range.
func (l *Layer) DeriveThickness() {
	l.Thickness = LayerThickness(l.DepthFrom, l.DepthTo)
}

// Validate checks the client-writable attributes of a layer.
func (l *Layer) Validate() error {
	verr := NewValidationError()
	if l.WellID == uuid.Nil {
		verr.Add("well", MsgRequired)
	}
	if !l.Lithology.Valid() {
		verr.Add("lithology", invalidChoice(string(l.Lithology)))
	}
	if math.IsNaN(l.DepthFrom) || math.IsInf(l.DepthFrom, 0) {
		verr.Add("depth_from", MsgNotANumber)
	}
	if math.IsNaN(l.DepthTo) || math.IsInf(l.DepthTo, 0) {
		verr.Add("depth_to", MsgNotANumber)
	}
	checkOfflineID(verr, l.OfflineID)
	return verr.OrNil()
}
