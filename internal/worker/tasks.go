package worker

import (
	"context"

	"github.com/hibiken/asynq"
)

// Task names shared by the scheduler and the handlers.
const (
	TaskDealsRefresh   = "deals:refresh"
	TaskNewsletterSend = "newsletter:send"
	TaskVideoRefresh   = "video:refresh"
)

// NewsletterSender рассылает еженедельный дайджест.
type NewsletterSender interface {
	Send(ctx context.Context) error
}

// TaskHandlers binds the periodic jobs to asynq. Every handler is a plain
// passthrough: a failed run surfaces to asynq, and the next scheduled run
// simply reconciles from scratch.
type TaskHandlers struct {
	scanner    *DealScanner
	newsletter NewsletterSender
	video      *VideoRefresher
}

func NewTaskHandlers(scanner *DealScanner, newsletter NewsletterSender, video *VideoRefresher) *TaskHandlers {
	return &TaskHandlers{scanner: scanner, newsletter: newsletter, video: video}
}

func (h *TaskHandlers) HandleDealsRefresh(ctx context.Context, _ *asynq.Task) error {
	return h.scanner.ScanCycle(ctx)
}

func (h *TaskHandlers) HandleNewsletterSend(ctx context.Context, _ *asynq.Task) error {
	return h.newsletter.Send(ctx)
}

func (h *TaskHandlers) HandleVideoRefresh(ctx context.Context, _ *asynq.Task) error {
	return h.video.Refresh(ctx)
}

func (h *TaskHandlers) HasNewsletter() bool { return h.newsletter != nil }

func (h *TaskHandlers) HasVideo() bool { return h.video != nil }
