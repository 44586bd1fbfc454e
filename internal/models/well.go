package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SyncStatus is set and cleared by the offline sync client. Server writes
// leave it at its default.
type SyncStatus string

const (
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusPending SyncStatus = "pending"
)

func (s SyncStatus) Valid() bool {
	return s == SyncStatusSynced || s == SyncStatusPending
}

const (
	maxNameLength      = 255
	maxOfflineIDLength = 100
)

type Well struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Area        string     `gorm:"size:255;not null;index" json:"area"`
	Structure   string     `gorm:"size:255;not null;index" json:"structure"`
	DesignDepth float64    `gorm:"not null" json:"design_depth"`
	OfflineID   *string    `gorm:"size:100;index" json:"offline_id"`
	SyncStatus  SyncStatus `gorm:"size:20;not null;default:'synced';index" json:"sync_status"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Owner       User       `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Layers      []Layer    `gorm:"foreignKey:WellID;constraint:OnDelete:CASCADE" json:"layers"`
}

func (Well) TableName() string { return "wells" }

// Validate checks the client-writable attributes of a well.
func (w *Well) Validate() error {
	verr := NewValidationError()
	checkText(verr, "name", w.Name)
	checkText(verr, "area", w.Area)
	checkText(verr, "structure", w.Structure)
	checkOfflineID(verr, w.OfflineID)
	return verr.OrNil()
}

func checkText(verr *ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		verr.Add(field, MsgBlank)
		return
	}
	if len([]rune(value)) > maxNameLength {
		verr.Add(field, "Ensure this field has no more than 255 characters.")
	}
}

func checkOfflineID(verr *ValidationError, offlineID *string) {
	if offlineID != nil && len([]rune(*offlineID)) > maxOfflineIDLength {
		verr.Add("offline_id", "Ensure this field has no more than 100 characters.")
	}
}
