package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/quotebook"
	"github.com/mrlokans/quotebook/internal/storage"
)

func TestUIController_Index(t *testing.T) {
	t.Run("renders a quote and the category selector", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do("GET", "/", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "The journey of a thousand miles begins with one step.")
		assert.Contains(t, body, `<option value="Programming">`)
		assert.Contains(t, body, "All Categories")
		assert.NotContains(t, body, csrfFieldName)
	})

	t.Run("shows the session's last quote again", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, storage.SetString(context.Background(), env.session, entities.SessionKeyLastQuoteIndex, "2"))
		require.NoError(t, storage.SetString(context.Background(), env.session, entities.SessionKeyLastQuoteCategory, entities.CategoryAll))

		w := env.do("GET", "/", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Code is like humor.")
	})

	t.Run("shows the empty message when there are no quotes", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := context.Background()
		require.NoError(t, env.persistent.Set(ctx, entities.SettingKeyQuotes, []byte("[]")))
		require.NoError(t, env.book.Load(ctx))

		w := env.do("GET", "/", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), quotebook.NoQuotesMessage)
	})

	t.Run("lists active notifications", func(t *testing.T) {
		env := newTestEnv(t)
		env.notifier.Notify(entities.NotificationInfo, "hello there")

		w := env.do("GET", "/", nil, "")
		assert.Contains(t, w.Body.String(), "hello there")
	})
}

func TestQuotesController_AddForm(t *testing.T) {
	t.Run("adds the quote and redirects with a banner", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.postForm("/quotes", "text=Stay+hungry.&category=Motivation")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		assert.Equal(t, 4, env.book.Store.Len())
		assert.Equal(t, []string{"all", "Motivation", "Life", "Programming"}, env.book.Categories.Categories())
		assert.Contains(t, env.messages(), MessageQuoteAdded)
		require.Len(t, env.publisher.quotes, 1)
		assert.Equal(t, "Stay hungry.", env.publisher.quotes[0].Text)
	})

	t.Run("rejects blank fields", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.postForm("/quotes", "text=++&category=Motivation")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, 3, env.book.Store.Len())
		assert.Contains(t, env.messages(), MessageMissingFields)
		assert.Empty(t, env.publisher.quotes)
	})

	t.Run("reports an unparseable form body", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.postForm("/quotes", "text=%zz&category=Motivation")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, 3, env.book.Store.Len())
		assert.Contains(t, env.messages(), MessageInvalidForm)
		assert.NotContains(t, env.messages(), MessageMissingFields)
		assert.Empty(t, env.publisher.quotes)
	})

	t.Run("keeps the quote when publishing cannot be queued", func(t *testing.T) {
		env := newTestEnv(t)
		env.publisher.err = errors.New("queue closed")

		w := env.postForm("/quotes", "text=Keep+going.&category=Motivation")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, 4, env.book.Store.Len())
		assert.Contains(t, env.messages(), MessageQuoteAdded)
	})
}

func TestQuotesController_Create(t *testing.T) {
	t.Run("creates a quote", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.postJSON("POST", "/api/quotes", `{"text":"  Stay hungry. ","category":"Motivation"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp CreateQuoteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, entities.Quote{Text: "Stay hungry.", Category: "Motivation"}, resp.Quote)
		assert.Equal(t, 4, resp.Total)
		assert.Equal(t, "task-1", resp.TaskID)
	})

	t.Run("returns field errors for blank input", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.postJSON("POST", "/api/quotes", `{"text":"","category":""}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "validation_failed", resp.Code)
		assert.NotNil(t, resp.Details)
		assert.Equal(t, 3, env.book.Store.Len())
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.postJSON("POST", "/api/quotes", `{"text":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestQuotesController_List(t *testing.T) {
	env := newTestEnv(t)

	w := env.do("GET", "/api/quotes", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Quotes []entities.Quote `json:"quotes"`
		Total  int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, entities.SeedQuotes(), resp.Quotes)
}

func TestQuotesController_Random(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		available bool
		category  string
		display   string
	}{
		{
			name:      "uses the selected category by default",
			path:      "/api/quotes/random",
			available: true,
			category:  "all",
			display:   "\"The journey of a thousand miles begins with one step.\" — Motivation",
		},
		{
			name:      "filters by the query category",
			path:      "/api/quotes/random?category=Programming",
			available: true,
			category:  "Programming",
			display:   "\"Code is like humor. When you have to explain it, it’s bad.\" — Programming",
		},
		{
			name:      "reports an empty filter",
			path:      "/api/quotes/random?category=Poetry",
			available: false,
			category:  "Poetry",
			display:   quotebook.NoQuotesMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			w := env.do("GET", tt.path, nil, "")

			require.Equal(t, http.StatusOK, w.Code)
			var resp SelectionResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.available, resp.Available)
			assert.Equal(t, tt.category, resp.Category)
			assert.Equal(t, tt.display, resp.Display)
			if !tt.available {
				assert.Nil(t, resp.Quote)
			}
		})
	}
}

func TestQuotesController_Categories(t *testing.T) {
	env := newTestEnv(t)

	w := env.do("GET", "/api/categories", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp CategoriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"all", "Motivation", "Life", "Programming"}, resp.Categories)
	assert.Equal(t, "all", resp.Selected)
}

func TestQuotesController_SelectCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the selection and draws from it", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.postJSON("PUT", "/api/categories/selected", `{"category":"Life"}`)

		require.Equal(t, http.StatusOK, w.Code)
		var resp CategoriesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Life", resp.Selected)
		require.NotNil(t, resp.Selection)
		require.NotNil(t, resp.Selection.Quote)
		assert.Equal(t, "Life", resp.Selection.Quote.Category)

		active, err := env.book.Categories.ActiveCategory(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Life", active)
	})

	t.Run("blank selects all", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.book.Categories.SelectCategory(ctx, "Life"))

		w := env.postJSON("PUT", "/api/categories/selected", `{"category":" "}`)

		require.Equal(t, http.StatusOK, w.Code)
		active, err := env.book.Categories.ActiveCategory(ctx)
		require.NoError(t, err)
		assert.Equal(t, "all", active)
	})

	t.Run("rejects unknown categories", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.postJSON("PUT", "/api/categories/selected", `{"category":"Poetry"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "unknown_category")
	})
}

func TestQuotesController_FilterAndRandomForms(t *testing.T) {
	ctx := context.Background()

	t.Run("filter form selects the category and remembers a quote from it", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.postForm("/filter", "category=Programming")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		active, err := env.book.Categories.ActiveCategory(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Programming", active)

		idx, ok, err := storage.GetString(ctx, env.session, entities.SessionKeyLastQuoteIndex)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "0", idx)
	})

	t.Run("filter form ignores unknown categories", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.postForm("/filter", "category=Poetry")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Contains(t, env.messages(), MessageUnknownCategory)
		active, err := env.book.Categories.ActiveCategory(ctx)
		require.NoError(t, err)
		assert.Equal(t, "all", active)
	})

	t.Run("random form draws a new quote", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.postForm("/random", "")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		_, ok, err := storage.GetString(ctx, env.session, entities.SessionKeyLastQuoteIndex)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
