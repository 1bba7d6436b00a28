package models

import "time"

// TokenRevocado is the revocation ledger: any jti present here is refused by
// the auth gate even if the token has not expired. Rows are append-only;
// duplicates are harmless because the gate checks membership, not count.
// A background sweeper drops rows older than the token TTL, since their
// tokens can no longer be live anyway.
type TokenRevocado struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Jti       string    `gorm:"size:36;not null;index" json:"jti"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
