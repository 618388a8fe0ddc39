package models

// ServiceResponse is an opaque cached HTTP response keyed by URL, kept as a
// raw fallback cache independent of the typed entities.
type ServiceResponse struct {
	CacheMeta
	URL         string `gorm:"size:2048;index" json:"url"`
	StatusCode  int    `json:"status_code"`
	ContentType string `gorm:"size:255" json:"content_type"`
	Body        []byte `gorm:"type:blob" json:"-"`
}
