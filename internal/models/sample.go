package models

// QuantitySample is a timestamped scalar measurement. The creation time is
// the sample timestamp; samples are queried by (type, date range).
type QuantitySample struct {
	CacheMeta
	Type   SampleType `gorm:"size:32;index" json:"type"`
	Amount float64    `json:"amount"`
}
