package models

import (
	"time"

	"gorm.io/datatypes"
)

// Profile holds the single active health profile for a user.
type Profile struct {
	CacheMeta
	Name           string                      `gorm:"size:255" json:"name"`
	Birthdate      time.Time                   `json:"birthdate"`
	HeightCM       float64                     `json:"height_cm"`
	WeightKG       float64                     `json:"weight_kg"`
	OnDialysis     bool                        `json:"on_dialysis"`
	DiseaseStage   string                      `gorm:"size:50" json:"disease_stage"`
	Comorbidities  datatypes.JSONSlice[string] `json:"comorbidities"`
	Avatar         []byte                      `gorm:"type:blob" json:"-"`
	SetupCompleted bool                        `json:"setup_completed"`
	DeviceLinked   bool                        `json:"device_linked"`
}
