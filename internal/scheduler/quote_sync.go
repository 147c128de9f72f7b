// Package scheduler polls the remote quote source on a cron schedule and
// merges what it finds into the quote store.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/quotebook/internal/config"
	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/settingsstore"
)

// Messages shown after a poll.
const (
	MessageInserted = "New quote synced from server."
	MessageSynced   = "Quotes synced with server."
	MessageFailed   = "Server sync failed."
)

const defaultPollTimeout = 30 * time.Second

// ErrSyncInProgress is returned by SyncOnce while another poll is running.
var ErrSyncInProgress = errors.New("quote sync already in progress")

// Fetcher retrieves the current remote quote.
type Fetcher interface {
	FetchLatest(ctx context.Context) (entities.Quote, error)
}

// Merger inserts a quote unless an equal one exists.
type Merger interface {
	MergeOne(ctx context.Context, q entities.Quote) (bool, error)
}

// Notifier shows the outcome of a poll to the user.
type Notifier interface {
	Notify(level entities.NotificationLevel, message string) entities.Notification
}

// StatusRecorder persists the outcome of the last poll.
type StatusRecorder interface {
	SetQuoteSyncStatus(ctx context.Context, at time.Time, status, message string, inserted int) error
}

// SyncResult describes one poll.
type SyncResult struct {
	Inserted bool   `json:"inserted"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

// QuoteSyncScheduler manages periodic polls of the remote quote source
type QuoteSyncScheduler struct {
	fetcher  Fetcher
	merger   Merger
	notifier Notifier
	status   StatusRecorder
	config   config.Sync

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	isSyncing bool
	baseCtx   context.Context
	cancel    context.CancelFunc
}

// NewQuoteSyncScheduler creates a new scheduler instance. status may be nil.
func NewQuoteSyncScheduler(cfg config.Sync, fetcher Fetcher, merger Merger, notifier Notifier, status StatusRecorder) *QuoteSyncScheduler {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultPollTimeout
	}
	return &QuoteSyncScheduler{
		fetcher:  fetcher,
		merger:   merger,
		notifier: notifier,
		status:   status,
		config:   cfg,
		cron:     cron.New(cron.WithParser(settingsstore.ScheduleParser)),
		baseCtx:  context.Background(),
	}
}

// Start begins polling if sync is enabled. Cancelling ctx stops the scheduler
// and aborts a poll in flight.
func (s *QuoteSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Infof("Quote sync scheduler: disabled")
		return nil
	}

	if err := settingsstore.ValidateCronSchedule(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, s.runSync)
	if err != nil {
		return fmt.Errorf("failed to schedule sync job: %w", err)
	}
	s.entryID = entryID

	s.baseCtx, s.cancel = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := settingsstore.GetNextRunTime(s.config.Schedule)
	log.Infof("Quote sync scheduler: started with schedule '%s' (%s). Next run: %v",
		s.config.Schedule,
		settingsstore.GetCronDescription(s.config.Schedule),
		nextRun)

	baseCtx := s.baseCtx
	go func() {
		<-baseCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running poll to finish
func (s *QuoteSyncScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	// Stop accepting new jobs; the running job must be able to take the lock
	ctx := s.cron.Stop()
	if cancel != nil {
		cancel()
	}
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	log.Infof("Quote sync scheduler: stopped")
}

// RunNow triggers an immediate poll in the background
func (s *QuoteSyncScheduler) RunNow() error {
	if s.IsSyncing() {
		return ErrSyncInProgress
	}
	go s.runSync()
	return nil
}

// IsRunning returns whether the scheduler is active
func (s *QuoteSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// IsSyncing returns whether a poll is currently in progress
func (s *QuoteSyncScheduler) IsSyncing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isSyncing
}

// GetNextRunTime returns when the next poll will occur
func (s *QuoteSyncScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *QuoteSyncScheduler) runSync() {
	s.mu.RLock()
	ctx := s.baseCtx
	s.mu.RUnlock()

	if _, err := s.SyncOnce(ctx); errors.Is(err, ErrSyncInProgress) {
		log.Debugf("Quote sync: skipped (already syncing)")
	}
}

// SyncOnce performs one poll: fetch, merge, notify, record. Poll failures are
// reported through the notifier and the returned result; the error is
// non-nil only for ErrSyncInProgress or a failed poll.
func (s *QuoteSyncScheduler) SyncOnce(ctx context.Context) (SyncResult, error) {
	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		return SyncResult{}, ErrSyncInProgress
	}
	s.isSyncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isSyncing = false
		s.mu.Unlock()
	}()

	log.Debugf("Quote sync: polling remote source")
	startTime := time.Now()

	pollCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	inserted, err := s.poll(pollCtx)
	if err != nil {
		log.Errorf("Quote sync: %v", err)
		result := SyncResult{Status: settingsstore.SyncStatusFailed, Message: MessageFailed}
		s.notifier.Notify(entities.NotificationError, MessageFailed)
		s.recordStatus(ctx, startTime, result, err.Error())
		return result, err
	}

	result := SyncResult{Inserted: inserted, Status: settingsstore.SyncStatusSuccess, Message: MessageSynced}
	if inserted {
		result.Message = MessageInserted
	}
	s.notifier.Notify(entities.NotificationSuccess, result.Message)
	s.recordStatus(ctx, startTime, result, result.Message)

	log.Debugf("Quote sync: finished in %v (inserted: %t)", time.Since(startTime).Round(time.Millisecond), inserted)
	return result, nil
}

func (s *QuoteSyncScheduler) poll(ctx context.Context) (bool, error) {
	q, err := s.fetcher.FetchLatest(ctx)
	if err != nil {
		return false, fmt.Errorf("fetch remote quote: %w", err)
	}

	// The fetch may outlive a shutdown; don't touch the store afterwards
	if err := ctx.Err(); err != nil {
		return false, err
	}

	inserted, err := s.merger.MergeOne(ctx, q)
	if err != nil {
		return false, fmt.Errorf("merge remote quote: %w", err)
	}
	return inserted, nil
}

func (s *QuoteSyncScheduler) recordStatus(ctx context.Context, at time.Time, result SyncResult, message string) {
	if s.status == nil {
		return
	}

	inserted := 0
	if result.Inserted {
		inserted = 1
	}

	// Record even when ctx was cancelled mid-poll
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.status.SetQuoteSyncStatus(recordCtx, at, result.Status, message, inserted); err != nil {
		log.Warnf("Quote sync: failed to record status: %v", err)
	}
}
