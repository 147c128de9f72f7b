// Package notify keeps the short-lived status banners shown on the page.
package notify

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mrlokans/quotebook/internal/entities"
)

const DefaultTTL = 5 * time.Second

// Notifier collects banners in arrival order and forgets them once expired.
type Notifier struct {
	mu    sync.Mutex
	ttl   time.Duration
	clock func() time.Time
	items []entities.Notification
}

// NewNotifier creates a notifier whose banners last ttl. A nil clock means time.Now.
func NewNotifier(ttl time.Duration, clock func() time.Time) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = time.Now
	}
	return &Notifier{ttl: ttl, clock: clock}
}

// Notify records a banner and logs the message at a matching level.
func (n *Notifier) Notify(level entities.NotificationLevel, message string) entities.Notification {
	now := n.clock()
	item := entities.Notification{
		ID:        uuid.New().String(),
		Level:     level,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(n.ttl),
	}

	switch level {
	case entities.NotificationError:
		log.Warn(message)
	default:
		log.Info(message)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.pruneLocked(now), item)
	return item
}

// Active returns the unexpired banners, oldest first.
func (n *Notifier) Active() []entities.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.items = n.pruneLocked(n.clock())
	return append([]entities.Notification(nil), n.items...)
}

func (n *Notifier) pruneLocked(now time.Time) []entities.Notification {
	kept := n.items[:0]
	for _, item := range n.items {
		if !item.Expired(now) {
			kept = append(kept, item)
		}
	}
	return kept
}
