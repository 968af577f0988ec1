package models

import "time"

// RecoveryToken is the persisted record of an e-mail verification token.
// A record is consumed exactly once: IsActive flips to false on successful
// confirmation and the row is kept as an audit trail.
type RecoveryToken struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	IsActive  bool      `json:"is_active"`
}

// TableName returns the name of the database table
// associated with the RecoveryToken model.
func (t RecoveryToken) TableName() string {
	return "token_recovery"
}
