package service

import (
	"context"
	"fmt"
	"time"

	"campus-im/internal/model"
	"campus-im/internal/repository"
	"campus-im/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Housekeeper prunes notifications that are read or belong to deleted
// users. It runs once a day at a fixed wall-clock time, outside any request
// transaction; each run is a single atomic delete and the whole job is
// idempotent. A failed run is logged and left for the next scheduled tick
// rather than retried immediately, so a persistently failing store is not
// hammered.
type Housekeeper struct {
	db    *gorm.DB
	runAt string // "HH:MM", 24h clock
}

func NewHousekeeper(db *gorm.DB, runAt string) *Housekeeper {
	return &Housekeeper{db: db, runAt: runAt}
}

// Start blocks until ctx is cancelled, firing RunOnce at each scheduled
// time.
func (h *Housekeeper) Start(ctx context.Context) {
	for {
		next := h.nextRun(time.Now())
		logger.Info("housekeeping scheduled",
			zap.Time("next_run", next),
		)

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		deleted, err := h.RunOnce()
		if err != nil {
			logger.Error("housekeeping run failed", zap.Error(err))
			h.recordFailure(err)
			continue
		}
		logger.Info("housekeeping run completed",
			zap.Int64("notifications_deleted", deleted),
		)
	}
}

// RunOnce performs one prune as a single transaction and reports how many
// notifications were removed.
func (h *Housekeeper) RunOnce() (int64, error) {
	var deleted int64
	err := h.db.Transaction(func(tx *gorm.DB) error {
		n, err := repository.NewNotificationRepository(tx).DeleteStale()
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("prune notifications: %w", err)
	}
	return deleted, nil
}

// nextRun resolves the next occurrence of the configured wall-clock time,
// always strictly after now. A malformed RunAt falls back to 03:30.
func (h *Housekeeper) nextRun(now time.Time) time.Time {
	var hour, minute int
	if _, err := fmt.Sscanf(h.runAt, "%d:%d", &hour, &minute); err != nil ||
		hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		hour, minute = 3, 30
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

func (h *Housekeeper) recordFailure(cause error) {
	_ = repository.NewErrorLogRepository(h.db).Append(&model.ErrorLog{
		ID:        uuid.New(),
		Message:   cause.Error(),
		Operation: "housekeeping.run",
		CreatedAt: time.Now(),
	})
}
