package janitor

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/safewings/api/pkg/config"
	"github.com/safewings/api/pkg/db"
	"github.com/safewings/api/pkg/flow"
	"github.com/safewings/api/pkg/log"
	"github.com/safewings/api/pkg/storage"
)

const reconcilePageSize = 200

// Janitor runs the background maintenance jobs: reconciling boarding
// pass rows against the blob store, sweeping expired upload tokens,
// and dropping idle wizard sessions.
type Janitor struct {
	cfg    *config.JanitorConfig
	repo   *db.Repository
	store  storage.BlobStore
	tokens *storage.UploadTokens
	flow   *flow.Controller
	logger *log.Logger
	cron   *cron.Cron
}

// New creates a janitor. Call Start to schedule its jobs.
func New(cfg *config.JanitorConfig, repo *db.Repository, store storage.BlobStore, tokens *storage.UploadTokens, flowCtrl *flow.Controller, logger *log.Logger) *Janitor {
	return &Janitor{
		cfg:    cfg,
		repo:   repo,
		store:  store,
		tokens: tokens,
		flow:   flowCtrl,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start schedules the maintenance jobs.
func (j *Janitor) Start() error {
	if !j.cfg.Enabled {
		j.logger.LogSystem("janitor", "start", true, map[string]interface{}{"enabled": false})
		return nil
	}

	if _, err := j.cron.AddFunc(j.cfg.ReconcileSchedule, j.runReconcile); err != nil {
		return fmt.Errorf("failed to schedule reconcile job: %w", err)
	}
	if _, err := j.cron.AddFunc(j.cfg.TokenSweep, j.runTokenSweep); err != nil {
		return fmt.Errorf("failed to schedule token sweep: %w", err)
	}
	if _, err := j.cron.AddFunc(j.cfg.SessionSweep, j.runSessionSweep); err != nil {
		return fmt.Errorf("failed to schedule session sweep: %w", err)
	}

	j.cron.Start()
	j.logger.LogSystem("janitor", "start", true, map[string]interface{}{
		"reconcile_schedule": j.cfg.ReconcileSchedule,
		"token_sweep":        j.cfg.TokenSweep,
		"session_sweep":      j.cfg.SessionSweep,
	})
	return nil
}

// Stop halts the schedule and waits for running jobs to finish.
func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.logger.LogSystem("janitor", "stop", true, nil)
}

func (j *Janitor) runReconcile() {
	orphans, scanned, err := j.ReconcileBoardingPasses(context.Background())
	if err != nil {
		j.logger.LogSystem("janitor", "reconcile", false, map[string]interface{}{"error": err.Error()})
		return
	}
	j.logger.LogSystem("janitor", "reconcile", true, map[string]interface{}{
		"scanned": scanned,
		"orphans": orphans,
	})
}

// ReconcileBoardingPasses scans boarding pass rows and reports those
// whose blob is missing. Orphaned rows are logged, not repaired; removal
// is a blob-then-row sequence and a row that outlived its blob needs a
// human decision, not an automated delete.
func (j *Janitor) ReconcileBoardingPasses(ctx context.Context) (orphans, scanned int, err error) {
	offset := 0
	for {
		page, err := j.repo.GetBoardingPassPage(offset, reconcilePageSize)
		if err != nil {
			return orphans, scanned, err
		}
		if len(page) == 0 {
			return orphans, scanned, nil
		}

		for _, bp := range page {
			scanned++
			exists, err := j.store.Exists(ctx, bp.FilePath)
			if err != nil {
				j.logger.LogSystem("janitor", "reconcile_check", false, map[string]interface{}{
					"boarding_pass_id": bp.ID,
					"error":            err.Error(),
				})
				continue
			}
			if !exists {
				orphans++
				j.logger.LogSystem("janitor", "orphaned_row", false, map[string]interface{}{
					"boarding_pass_id": bp.ID,
					"message_id":       bp.MessageID,
					"file_path":        bp.FilePath,
				})
			}
		}

		offset += len(page)
	}
}

func (j *Janitor) runTokenSweep() {
	dropped := j.tokens.Sweep()
	if dropped > 0 {
		j.logger.LogSystem("janitor", "token_sweep", true, map[string]interface{}{"dropped": dropped})
	}
}

func (j *Janitor) runSessionSweep() {
	dropped := j.flow.SweepIdle(SessionIdleTTL(j.cfg))
	if dropped > 0 {
		j.logger.LogSystem("janitor", "session_sweep", true, map[string]interface{}{
			"dropped":   dropped,
			"remaining": j.flow.ActiveSessions(),
		})
	}
}

// TokenTTL converts the configured upload token lifetime to a duration.
func TokenTTL(cfg *config.JanitorConfig) time.Duration {
	return time.Duration(cfg.UploadTokenTTL) * time.Second
}

// SessionIdleTTL converts the configured session idle limit to a duration.
func SessionIdleTTL(cfg *config.JanitorConfig) time.Duration {
	return time.Duration(cfg.SessionIdleTTL) * time.Second
}
