package http

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/quotebook"
)

// UIController renders the quote book page.
type UIController struct {
	book     *quotebook.Book
	notifier Notifier
	sync     *SyncController
	version  string
}

func NewUIController(book *quotebook.Book, notifier Notifier, sync *SyncController, version string) *UIController {
	return &UIController{
		book:     book,
		notifier: notifier,
		sync:     sync,
		version:  version,
	}
}

// pageData is everything the index template needs.
type pageData struct {
	Display       string
	HasQuote      bool
	Selection     quotebook.Selection
	Categories    []string
	Selected      string
	Total         int
	Notifications []entities.Notification
	Sync          SyncStatusResponse
	CSRFField     string
	CSRFToken     string
	Version       string
}

// Index handles GET /. The session's last quote is shown again when it is
// still valid for the selected category.
func (uc *UIController) Index(c *gin.Context) {
	ctx := c.Request.Context()

	sel, err := uc.book.Selector.RestoreOrPick(ctx)
	if err != nil && !errors.Is(err, quotebook.ErrNoQuotesAvailable) {
		log.Errorf("Failed to select quote: %v", err)
		c.String(http.StatusInternalServerError, "Failed to load quotes")
		return
	}

	data := pageData{
		Display:    quotebook.NoQuotesMessage,
		Selection:  sel,
		Categories: uc.book.Categories.Categories(),
		Selected:   sel.Category,
		Total:      uc.book.Store.Len(),
		CSRFField:  csrfFieldName,
		CSRFToken:  GetCSRFToken(c),
		Version:    uc.version,
	}
	if err == nil {
		data.Display = sel.Render()
		data.HasQuote = true
	}
	if uc.notifier != nil {
		data.Notifications = uc.notifier.Active()
	}
	if uc.sync != nil {
		status, err := uc.sync.snapshot(c)
		if err != nil {
			log.Warnf("Failed to read sync status: %v", err)
		}
		data.Sync = status
	}

	c.HTML(http.StatusOK, "index", data)
}
