package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/scheduler"
	"github.com/mrlokans/quotebook/internal/settingsstore"
)

// MessageSyncInProgress is shown when the sync button is pressed mid-poll.
const MessageSyncInProgress = "Sync already in progress."

// SyncController exposes the remote quote poll.
type SyncController struct {
	syncer   SyncRunner
	status   SyncStatusReader
	notifier Notifier
	schedule string
}

func NewSyncController(syncer SyncRunner, status SyncStatusReader, notifier Notifier, schedule string) *SyncController {
	return &SyncController{
		syncer:   syncer,
		status:   status,
		notifier: notifier,
		schedule: schedule,
	}
}

// SyncStatusResponse is returned by GET /api/sync/status.
type SyncStatusResponse struct {
	Enabled     bool                          `json:"enabled"`
	Running     bool                          `json:"running"`
	Syncing     bool                          `json:"syncing"`
	Schedule    string                        `json:"schedule,omitempty"`
	Description string                        `json:"description,omitempty"`
	NextRun     *time.Time                    `json:"next_run,omitempty"`
	Last        settingsstore.QuoteSyncStatus `json:"last"`
}

// SyncForm handles POST /sync. The poll runs in the background and reports
// its outcome through the scheduler's notification.
func (sc *SyncController) SyncForm(c *gin.Context) {
	if sc.syncer == nil {
		redirectHome(c)
		return
	}

	if err := sc.syncer.RunNow(); err != nil {
		log.Debugf("Manual sync not started: %v", err)
		if errors.Is(err, scheduler.ErrSyncInProgress) && sc.notifier != nil {
			sc.notifier.Notify(entities.NotificationInfo, MessageSyncInProgress)
		}
	}
	redirectHome(c)
}

// SyncAPI handles POST /api/sync.
func (sc *SyncController) SyncAPI(c *gin.Context) {
	if sc.syncer == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "sync is not configured", Code: "sync_disabled"})
		return
	}

	result, err := sc.syncer.SyncOnce(c.Request.Context())
	if errors.Is(err, scheduler.ErrSyncInProgress) {
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "sync_in_progress"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: result.Message, Code: "sync_failed", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Status handles GET /api/sync/status.
func (sc *SyncController) Status(c *gin.Context) {
	resp, err := sc.snapshot(c)
	if err != nil {
		respondInternalError(c, err, "sync status")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (sc *SyncController) snapshot(c *gin.Context) (SyncStatusResponse, error) {
	resp := SyncStatusResponse{}
	if sc.syncer != nil {
		resp.Enabled = true
		resp.Running = sc.syncer.IsRunning()
		resp.Syncing = sc.syncer.IsSyncing()
		resp.NextRun = sc.syncer.GetNextRunTime()
		resp.Schedule = sc.schedule
		if sc.schedule != "" {
			resp.Description = settingsstore.GetCronDescription(sc.schedule)
		}
	}
	if sc.status != nil {
		last, err := sc.status.GetQuoteSyncStatus(c.Request.Context())
		if err != nil {
			return resp, err
		}
		resp.Last = last
	}
	return resp, nil
}
