package access

import "gorm.io/gorm"

// VisibleWells returns a GORM scope that limits wells to the caller's own
// unless the caller is a superuser.
func VisibleWells(id Identity) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if id.Superuser {
			return db
		}
		return db.Where("wells.owner_id = ?", id.UserID)
	}
}

// VisibleLayers returns a GORM scope that limits layers to those whose parent
// well is owned by the caller unless the caller is a superuser.
func VisibleLayers(id Identity) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if id.Superuser {
			return db
		}
		owned := db.Session(&gorm.Session{NewDB: true}).
			Table("wells").
			Select("id").
			Where("owner_id = ?", id.UserID)
		return db.Where("layers.well_id IN (?)", owned)
	}
}
