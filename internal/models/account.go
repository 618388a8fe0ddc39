package models

// Account is the locally cached credentials record used for local-first
// authentication. The password is stored as a bcrypt hash, never cleartext.
type Account struct {
	CacheMeta
	Email          string `gorm:"size:255;not null;index" json:"email"`
	PasswordHash   string `gorm:"not null" json:"-"`
	SetupCompleted bool   `json:"setup_completed"`
}
