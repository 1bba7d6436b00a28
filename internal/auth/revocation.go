package auth

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"erpsaas/internal/models"
)

// Revoke appends the jti to the revocation ledger. No uniqueness is enforced;
// revoking an already revoked token just adds another row, and the gate only
// cares about membership.
func Revoke(db *gorm.DB, jti string) error {
	return db.Create(&models.TokenRevocado{Jti: jti, CreatedAt: time.Now()}).Error
}

func IsRevoked(db *gorm.DB, jti string) (bool, error) {
	var n int64
	err := db.Model(&models.TokenRevocado{}).Where("jti = ?", jti).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SweepRevoked drops ledger entries older than ttl. Any token that old has
// already expired on its own clock, so the entry can never match a live token.
func SweepRevoked(db *gorm.DB, ttl time.Duration) (int64, error) {
	res := db.Where("created_at < ?", time.Now().Add(-ttl)).Delete(&models.TokenRevocado{})
	return res.RowsAffected, res.Error
}

// StartRevocationSweeper prunes the ledger on a fixed interval until ctx is
// cancelled.
func StartRevocationSweeper(ctx context.Context, db *gorm.DB, lg *zap.SugaredLogger, every time.Duration) {
	go func() {
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				n, err := SweepRevoked(db, TokenTTL())
				if err != nil {
					lg.Warnw("revocation sweep failed", "error", err)
					continue
				}
				if n > 0 {
					lg.Infow("revocation sweep", "deleted", n)
				}
			}
		}
	}()
}
