package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/remote"
)

// Messages shown after a publish attempt.
const (
	MessagePublished     = "Quote posted to server."
	MessagePublishFailed = "Failed to post quote to server."
)

// PublishQuoteTask posts a newly added quote to the remote collection.
type PublishQuoteTask struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// Config returns the queue configuration for publish tasks. A failed post is
// not retried.
func (t PublishQuoteTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "publish_quote",
		MaxAttempts: 1,
		Timeout:     30 * time.Second,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// Publisher sends a quote to the remote collection.
type Publisher interface {
	PublishQuote(ctx context.Context, q entities.Quote) (*remote.Post, error)
}

// Notifier shows the publish outcome to the user.
type Notifier interface {
	Notify(level entities.NotificationLevel, message string) entities.Notification
}

// PublishQuoteProcessor creates a processor function for PublishQuoteTask.
func PublishQuoteProcessor(publisher Publisher, notifier Notifier) backlite.QueueProcessor[PublishQuoteTask] {
	return func(ctx context.Context, task PublishQuoteTask) error {
		if publisher == nil {
			return fmt.Errorf("publisher not configured")
		}

		q := entities.Quote{Text: task.Text, Category: task.Category}
		post, err := publisher.PublishQuote(ctx, q)
		if err != nil {
			if notifier != nil {
				notifier.Notify(entities.NotificationError, MessagePublishFailed)
			}
			return fmt.Errorf("publish quote: %w", err)
		}

		log.Infof("[TASK] Posted quote to server as post %d", post.ID)
		if notifier != nil {
			notifier.Notify(entities.NotificationSuccess, MessagePublished)
		}
		return nil
	}
}

// NewPublishQuoteQueue creates a backlite queue for publish tasks.
func NewPublishQuoteQueue(publisher Publisher, notifier Notifier) backlite.Queue {
	return backlite.NewQueue(PublishQuoteProcessor(publisher, notifier))
}

// QuotePublisher enqueues publish tasks for newly added quotes.
type QuotePublisher struct {
	client *Client
}

func NewQuotePublisher(client *Client) *QuotePublisher {
	return &QuotePublisher{client: client}
}

// Enqueue schedules q for publishing and returns the task id.
func (p *QuotePublisher) Enqueue(q entities.Quote) (string, error) {
	ids, err := p.client.Add(PublishQuoteTask{Text: q.Text, Category: q.Category}).Save()
	if err != nil {
		return "", fmt.Errorf("enqueue publish task: %w", err)
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("enqueue publish task: no task id returned")
	}
	return ids[0], nil
}

// StatusString maps a backlite task status to its API name.
func StatusString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
