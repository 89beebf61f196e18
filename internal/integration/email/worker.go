package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
	"github.com/finance-tracker/savings-ledger/internal/integration/email/templates"
)

// Worker processes the notification outbox and sends emails.
type Worker struct {
	outbox       adapter.NotificationRepository
	sender       adapter.EmailSender
	renderer     *templates.Renderer
	pollInterval time.Duration
	batchSize    int
}

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
	}
}

// NewWorker creates a new email worker.
func NewWorker(outbox adapter.NotificationRepository, sender adapter.EmailSender, renderer *templates.Renderer, config WorkerConfig) *Worker {
	defaults := DefaultWorkerConfig()
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}
	return &Worker{
		outbox:       outbox,
		sender:       sender,
		renderer:     renderer,
		pollInterval: config.PollInterval,
		batchSize:    config.BatchSize,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

// ProcessNow delivers one batch immediately.
func (w *Worker) ProcessNow(ctx context.Context) {
	w.processBatch(ctx)
}

func (w *Worker) processBatch(ctx context.Context) {
	notifications, err := w.outbox.ClaimPending(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to claim pending notifications", "error", err)
		return
	}

	if len(notifications) == 0 {
		return
	}

	slog.Debug("Processing notification batch", "count", len(notifications))

	for _, n := range notifications {
		select {
		case <-ctx.Done():
			return
		default:
			w.deliver(ctx, n)
		}
	}
}

func (w *Worker) deliver(ctx context.Context, n *entity.Notification) {
	logger := slog.With(
		"notification_id", n.ID,
		"kind", n.Kind,
		"recipient", n.RecipientEmail,
	)

	html, text, err := w.render(n)
	if err != nil {
		logger.Error("Failed to render notification", "error", err)
		w.handleFailure(ctx, n, err, true)
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      n.RecipientEmail,
		Name:    n.RecipientName,
		Subject: n.Subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		logger.Error("Failed to send email", "error", err)

		var emailErr *domainerror.EmailError
		permanent := errors.As(err, &emailErr) && emailErr.Code == domainerror.ErrCodePermanentEmailFailure
		w.handleFailure(ctx, n, err, permanent)
		return
	}

	n.MarkSent(result.ProviderID)
	if err := w.outbox.Update(ctx, n); err != nil {
		logger.Error("Failed to mark notification as sent", "error", err)
		return
	}

	logger.Info("Email sent", "provider_id", result.ProviderID)
}

func (w *Worker) render(n *entity.Notification) (html string, text string, err error) {
	var data any
	switch n.Kind {
	case entity.NotificationAutoSaveExecuted:
		data = templates.AutoSaveExecutedData{
			UserName:      n.RecipientName,
			GoalName:      getString(n.Data, "goal_name"),
			Amount:        getString(n.Data, "amount"),
			CurrentAmount: getString(n.Data, "current_amount"),
			TargetAmount:  getString(n.Data, "target_amount"),
			NextDate:      getString(n.Data, "next_date"),
		}
	case entity.NotificationPaymentConfirmed:
		data = templates.PaymentConfirmedData{
			UserName:  n.RecipientName,
			Title:     getString(n.Data, "title"),
			Amount:    getString(n.Data, "amount"),
			PaidAt:    getString(n.Data, "paid_at"),
			Recurring: getBool(n.Data, "recurring"),
			NextDate:  getString(n.Data, "next_date"),
		}
	default:
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			"unknown notification kind",
			domainerror.ErrInvalidTemplate,
		)
	}

	html, text, err = w.renderer.Render(string(n.Kind), data)
	if err != nil {
		return "", "", domainerror.NewEmailError(domainerror.ErrCodeTemplateRenderFailed, "failed to render template", err)
	}
	return html, text, nil
}

func (w *Worker) handleFailure(ctx context.Context, n *entity.Notification, err error, permanent bool) {
	n.MarkFailed(err, permanent)

	if updateErr := w.outbox.Update(ctx, n); updateErr != nil {
		slog.Error("Failed to update notification after failure",
			"notification_id", n.ID,
			"error", updateErr,
		)
	}

	if n.Status == entity.NotificationFailed {
		slog.Warn("Notification permanently failed",
			"notification_id", n.ID,
			"attempts", n.Attempts,
			"last_error", n.LastError,
		)
		return
	}
	slog.Info("Notification scheduled for retry",
		"notification_id", n.ID,
		"attempts", n.Attempts,
		"scheduled_at", n.ScheduledAt,
	)
}

func getString(data map[string]any, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

func getBool(data map[string]any, key string) bool {
	b, _ := data[key].(bool)
	return b
}
