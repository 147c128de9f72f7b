package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/quotebook"
)

// User-facing banner texts for the form endpoints.
const (
	MessageQuoteAdded      = "Quote added successfully!"
	MessageMissingFields   = "Please enter both quote and category."
	MessageUnknownCategory = "Unknown category."
	MessageInvalidForm     = "Invalid form submission."
)

// QuotesController serves quote listing, creation, filtering and random
// selection for both the HTML forms and the JSON API.
type QuotesController struct {
	book      *quotebook.Book
	notifier  Notifier
	publisher QuoteEnqueuer
}

func NewQuotesController(book *quotebook.Book, notifier Notifier, publisher QuoteEnqueuer) *QuotesController {
	return &QuotesController{
		book:      book,
		notifier:  notifier,
		publisher: publisher,
	}
}

// QuoteRequest is the body accepted by the add endpoints.
type QuoteRequest struct {
	Text     string `json:"text" form:"text"`
	Category string `json:"category" form:"category"`
}

// CreateQuoteResponse is returned by POST /api/quotes.
type CreateQuoteResponse struct {
	Quote  entities.Quote `json:"quote"`
	Total  int            `json:"total"`
	TaskID string         `json:"task_id,omitempty"`
}

// SelectionResponse describes the quote chosen for display.
type SelectionResponse struct {
	Available bool            `json:"available"`
	Category  string          `json:"category"`
	Display   string          `json:"display"`
	Quote     *entities.Quote `json:"quote,omitempty"`
	Index     *int            `json:"index,omitempty"`
}

// CategoriesResponse is returned by the categories endpoints.
type CategoriesResponse struct {
	Categories []string           `json:"categories"`
	Selected   string             `json:"selected"`
	Selection  *SelectionResponse `json:"selection,omitempty"`
}

// SelectCategoryRequest is the body of PUT /api/categories/selected.
type SelectCategoryRequest struct {
	Category string `json:"category" form:"category"`
}

func newSelectionResponse(sel quotebook.Selection, err error) SelectionResponse {
	if errors.Is(err, quotebook.ErrNoQuotesAvailable) {
		return SelectionResponse{
			Available: false,
			Category:  sel.Category,
			Display:   quotebook.NoQuotesMessage,
		}
	}
	q := sel.Quote
	idx := sel.Index
	return SelectionResponse{
		Available: true,
		Category:  sel.Category,
		Display:   sel.Render(),
		Quote:     &q,
		Index:     &idx,
	}
}

// add stores the quote and schedules it for publishing. Publishing problems
// are logged only; the quote is already saved locally.
func (qc *QuotesController) add(c *gin.Context, req QuoteRequest) (entities.Quote, string, error) {
	quote, err := qc.book.Store.Add(c.Request.Context(), req.Text, req.Category)
	if err != nil {
		return entities.Quote{}, "", err
	}

	if qc.publisher == nil {
		return quote, "", nil
	}
	taskID, err := qc.publisher.Enqueue(quote)
	if err != nil {
		log.Warnf("Failed to enqueue quote for publishing: %v", err)
		return quote, "", nil
	}
	return quote, taskID, nil
}

// AddForm handles POST /quotes from the page's add form.
func (qc *QuotesController) AddForm(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Debugf("Failed to bind add quote form: %v", err)
		qc.notify(entities.NotificationError, MessageInvalidForm)
		redirectHome(c)
		return
	}

	if _, _, err := qc.add(c, req); err != nil {
		if errors.Is(err, quotebook.ErrValidation) {
			qc.notify(entities.NotificationError, MessageMissingFields)
		} else {
			log.Errorf("Failed to add quote: %v", err)
			qc.notify(entities.NotificationError, "Failed to save quote.")
		}
		redirectHome(c)
		return
	}

	qc.notify(entities.NotificationSuccess, MessageQuoteAdded)
	redirectHome(c)
}

// FilterForm handles POST /filter: persist the selection and draw a quote from it.
func (qc *QuotesController) FilterForm(c *gin.Context) {
	category := strings.TrimSpace(c.PostForm("category"))
	if category != "" && !qc.book.Categories.Has(category) {
		qc.notify(entities.NotificationError, MessageUnknownCategory)
		redirectHome(c)
		return
	}

	ctx := c.Request.Context()
	if err := qc.book.Categories.SelectCategory(ctx, category); err != nil {
		log.Errorf("Failed to save selected category: %v", err)
		redirectHome(c)
		return
	}

	active, err := qc.book.Categories.ActiveCategory(ctx)
	if err == nil {
		_, err = qc.book.Selector.Pick(ctx, active)
	}
	if err != nil && !errors.Is(err, quotebook.ErrNoQuotesAvailable) {
		log.Errorf("Failed to pick quote: %v", err)
	}
	redirectHome(c)
}

// RandomForm handles POST /random ("Show New Quote").
func (qc *QuotesController) RandomForm(c *gin.Context) {
	ctx := c.Request.Context()
	active, err := qc.book.Categories.ActiveCategory(ctx)
	if err == nil {
		_, err = qc.book.Selector.Pick(ctx, active)
	}
	if err != nil && !errors.Is(err, quotebook.ErrNoQuotesAvailable) {
		log.Errorf("Failed to pick quote: %v", err)
	}
	redirectHome(c)
}

// List handles GET /api/quotes.
func (qc *QuotesController) List(c *gin.Context) {
	quotes := qc.book.Store.All()
	c.JSON(http.StatusOK, gin.H{
		"quotes": quotes,
		"total":  len(quotes),
	})
}

// Create handles POST /api/quotes.
func (qc *QuotesController) Create(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	quote, taskID, err := qc.add(c, req)
	if err != nil {
		if errors.Is(err, quotebook.ErrValidation) {
			respondValidationError(c, err)
			return
		}
		respondInternalError(c, err, "add quote")
		return
	}

	respondCreated(c, CreateQuoteResponse{
		Quote:  quote,
		Total:  qc.book.Store.Len(),
		TaskID: taskID,
	})
}

// Random handles GET /api/quotes/random. Without ?category= the persisted
// selection is used.
func (qc *QuotesController) Random(c *gin.Context) {
	ctx := c.Request.Context()
	category := strings.TrimSpace(c.Query("category"))
	if category == "" {
		active, err := qc.book.Categories.ActiveCategory(ctx)
		if err != nil {
			respondInternalError(c, err, "active category")
			return
		}
		category = active
	}

	sel, err := qc.book.Selector.Pick(ctx, category)
	if err != nil && !errors.Is(err, quotebook.ErrNoQuotesAvailable) {
		respondInternalError(c, err, "pick quote")
		return
	}
	c.JSON(http.StatusOK, newSelectionResponse(sel, err))
}

// Categories handles GET /api/categories.
func (qc *QuotesController) Categories(c *gin.Context) {
	active, err := qc.book.Categories.ActiveCategory(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "active category")
		return
	}
	c.JSON(http.StatusOK, CategoriesResponse{
		Categories: qc.book.Categories.Categories(),
		Selected:   active,
	})
}

// SelectCategory handles PUT /api/categories/selected. A blank category
// selects "all"; the response carries a quote drawn from the new filter.
func (qc *QuotesController) SelectCategory(c *gin.Context) {
	var req SelectCategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	category := strings.TrimSpace(req.Category)
	if category != "" && !qc.book.Categories.Has(category) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: MessageUnknownCategory, Code: "unknown_category"})
		return
	}

	ctx := c.Request.Context()
	if err := qc.book.Categories.SelectCategory(ctx, category); err != nil {
		respondInternalError(c, err, "select category")
		return
	}
	active, err := qc.book.Categories.ActiveCategory(ctx)
	if err != nil {
		respondInternalError(c, err, "active category")
		return
	}

	sel, err := qc.book.Selector.Pick(ctx, active)
	if err != nil && !errors.Is(err, quotebook.ErrNoQuotesAvailable) {
		respondInternalError(c, err, "pick quote")
		return
	}
	selection := newSelectionResponse(sel, err)

	c.JSON(http.StatusOK, CategoriesResponse{
		Categories: qc.book.Categories.Categories(),
		Selected:   active,
		Selection:  &selection,
	})
}

func (qc *QuotesController) notify(level entities.NotificationLevel, message string) {
	if qc.notifier != nil {
		qc.notifier.Notify(level, message)
	}
}
