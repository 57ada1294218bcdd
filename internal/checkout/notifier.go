package checkout

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aaravmahajanofficial/pos-platform/internal/api/middleware"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
)

type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, kind models.NoticeKind, message string) {
	logger := middleware.LoggerFromContext(ctx)

	switch kind {
	case models.NoticeError:
		logger.Error("Checkout notice", slog.String("message", message))
	case models.NoticeWarning:
		logger.Warn("Checkout notice", slog.String("message", message))
	default:
		logger.Info("Checkout notice", slog.String("message", message))
	}
}

// NoticeCollector buffers notices until Drain so they can be returned with the
// response that produced them. Every notice is also forwarded to next.
type NoticeCollector struct {
	mu      sync.Mutex
	notices []models.Notice
	next    Notifier
}

func NewNoticeCollector(next Notifier) *NoticeCollector {
	return &NoticeCollector{next: next}
}

func (c *NoticeCollector) Notify(ctx context.Context, kind models.NoticeKind, message string) {
	c.mu.Lock()
	c.notices = append(c.notices, models.Notice{Kind: kind, Message: message})
	c.mu.Unlock()

	if c.next != nil {
		c.next.Notify(ctx, kind, message)
	}
}

func (c *NoticeCollector) Drain() []models.Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	notices := c.notices
	c.notices = nil

	return notices
}
