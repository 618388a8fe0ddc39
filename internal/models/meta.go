package models

import "time"

// CacheMeta carries the fields every cached entity shares: a stable string
// identifier (empty until first persisted), the time the record was last
// fetched or written locally, and the owning user scope (empty = global).
type CacheMeta struct {
	ID            string    `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	RetrievalDate time.Time `gorm:"index" json:"retrieval_date"`
	UserID        string    `gorm:"type:varchar(36);index" json:"user_id"`
}

func (m *CacheMeta) EntityID() string { return m.ID }

func (m *CacheMeta) SetEntityID(id string) { m.ID = id }

func (m *CacheMeta) RetrievedAt() time.Time { return m.RetrievalDate }

// Touch stamps the record as freshly retrieved/written.
func (m *CacheMeta) Touch(at time.Time) { m.RetrievalDate = at }

func (m *CacheMeta) Owner() string { return m.UserID }

func (m *CacheMeta) SetOwner(userID string) { m.UserID = userID }
