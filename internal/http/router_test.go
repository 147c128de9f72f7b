package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/exporters"
	"github.com/mrlokans/quotebook/internal/importers"
	"github.com/mrlokans/quotebook/internal/notify"
	"github.com/mrlokans/quotebook/internal/quotebook"
	"github.com/mrlokans/quotebook/internal/scheduler"
	"github.com/mrlokans/quotebook/internal/settingsstore"
	"github.com/mrlokans/quotebook/internal/storage"
)

// testEnv is a router over an in-memory quote book seeded with the default quotes.
type testEnv struct {
	router     *gin.Engine
	book       *quotebook.Book
	notifier   *notify.Notifier
	persistent *storage.MemoryStore
	session    *storage.MemoryStore
	publisher  *fakePublisher
}

type envOption func(*RouterConfig)

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	persistent := storage.NewMemoryStore()
	session := storage.NewMemoryStore()
	book := quotebook.New(persistent, session, quotebook.WithRandom(func(int) int { return 0 }))
	require.NoError(t, book.Load(context.Background()))

	notifier := notify.NewNotifier(time.Minute, nil)
	publisher := &fakePublisher{}

	cfg := RouterConfig{
		Book:      book,
		Importer:  importers.NewPipeline(book.Store, nil),
		Exporter:  exporters.NewExporter(book.Store),
		Notifier:  notifier,
		Publisher: publisher,
		Version:   "test",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &testEnv{
		router:     NewRouter(cfg),
		book:       book,
		notifier:   notifier,
		persistent: persistent,
		session:    session,
		publisher:  publisher,
	}
}

func (e *testEnv) do(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) postForm(path, form string) *httptest.ResponseRecorder {
	return e.do("POST", path, strings.NewReader(form), "application/x-www-form-urlencoded")
}

func (e *testEnv) postJSON(method, path, body string) *httptest.ResponseRecorder {
	return e.do(method, path, strings.NewReader(body), "application/json")
}

// messages returns the text of every active banner.
func (e *testEnv) messages() []string {
	var out []string
	for _, n := range e.notifier.Active() {
		out = append(out, n.Message)
	}
	return out
}

type fakePublisher struct {
	mu     sync.Mutex
	quotes []entities.Quote
	err    error
}

func (f *fakePublisher) Enqueue(q entities.Quote) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.quotes = append(f.quotes, q)
	return "task-1", nil
}

type fakeSyncer struct {
	result     scheduler.SyncResult
	err        error
	runNowErr  error
	calls      int
	background int
	running    bool
	next       *time.Time
}

func (f *fakeSyncer) SyncOnce(context.Context) (scheduler.SyncResult, error) {
	f.calls++
	return f.result, f.err
}

func (f *fakeSyncer) RunNow() error {
	f.background++
	return f.runNowErr
}

func (f *fakeSyncer) IsRunning() bool            { return f.running }
func (f *fakeSyncer) IsSyncing() bool            { return false }
func (f *fakeSyncer) GetNextRunTime() *time.Time { return f.next }

type fakeSyncStatus struct {
	status settingsstore.QuoteSyncStatus
}

func (f fakeSyncStatus) GetQuoteSyncStatus(context.Context) (settingsstore.QuoteSyncStatus, error) {
	return f.status, nil
}

type fakeTaskStatus struct {
	status backlite.TaskStatus
}

func (f fakeTaskStatus) Status(context.Context, string) (backlite.TaskStatus, error) {
	return f.status, nil
}
