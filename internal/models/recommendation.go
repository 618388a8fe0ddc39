package models

// Recommendation is origin-authored guidance content. Category is a derived
// field merged in from the always-fresh categories lookup and never cached.
type Recommendation struct {
	CacheMeta
	Title       string             `gorm:"size:255;not null" json:"title"`
	Text        string             `gorm:"type:text" json:"text"`
	ImageRef    string             `gorm:"size:255" json:"image_ref"`
	Kind        RecommendationKind `gorm:"size:32;index" json:"kind"`
	TintColor   string             `gorm:"size:20" json:"tint_color"`
	RelatedFood string             `gorm:"size:255" json:"related_food"`
	Category    string             `gorm:"-" json:"category,omitempty"`
}
