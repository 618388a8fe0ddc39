package models

// Goal is a user-authored tracking goal, ordered by its persisted SortIndex.
type Goal struct {
	CacheMeta
	Title         string   `gorm:"size:255;not null" json:"title"`
	Frequency     string   `gorm:"size:50" json:"frequency"`
	TargetValue   float64  `json:"target_value"`
	InitialValue  float64  `json:"initial_value"`
	CurrentValue  float64  `json:"current_value"`
	SortIndex     int      `gorm:"index" json:"sort_index"`
	RewardPoints  int      `json:"reward_points"`
	MinValue      *float64 `json:"min_value,omitempty"`
	MaxValue      *float64 `json:"max_value,omitempty"`
	Color         string   `gorm:"size:20" json:"color"`
	Icon          string   `gorm:"size:100" json:"icon"`
	DeviceSourced bool     `json:"device_sourced"`
}
