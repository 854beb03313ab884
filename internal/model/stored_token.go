package model

import "time"

// StoredToken is a persisted session credential row.
type StoredToken struct {
	Key       string    `json:"key" gorm:"primaryKey;size:64"`
	Value     string    `json:"-" gorm:"type:text;not null"` // Never expose in JSON
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the table name.
func (StoredToken) TableName() string {
	return "session_tokens"
}
