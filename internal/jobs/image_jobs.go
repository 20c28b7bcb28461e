package jobs

import (
	"context"
	"time"

	"fleetrent-backend/internal/logger"
)

// pendingImageTTL is how long an unconfirmed upload may sit before the
// cleanup sweep reclaims it.
const pendingImageTTL = 24 * time.Hour

// CleanupPendingImages deletes upload records that were never confirmed and
// removes their blobs from storage.
func (jr *JobRunner) CleanupPendingImages() {
	jr.runWithRecovery("CleanupPendingImages", func() {
		ctx := context.Background()

		cutoff := time.Now().Add(-pendingImageTTL)
		keys, err := jr.store.ImageRepository.DeleteExpiredPending(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to delete expired pending images", "error", err)
			return
		}

		for _, key := range keys {
			if err := jr.services.Storage.DeleteFile(ctx, key); err != nil {
				logger.Error("Failed to delete image blob", "key", key, "error", err)
			}
		}

		logger.Info("Cleaned up pending images", "count", len(keys))
	})
}
