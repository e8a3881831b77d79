// Package service orchestrates the submission pipeline: numbering,
// persistence, bulletin rendering, operator notification, and payment
// initiation. Control flow is strictly linear per submission.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"adhesion/internal/membership/counter"
	"adhesion/internal/membership/document"
	"adhesion/internal/membership/models"
	"adhesion/internal/membership/payment"
	"adhesion/internal/platform/metrics"
)

// notifyTimeout bounds the detached notification send so a hung SMTP
// conversation cannot leak goroutines forever.
const notifyTimeout = 2 * time.Minute

// RecordStore persists membership records.
type RecordStore interface {
	Save(ctx context.Context, m models.Member) error
}

// Renderer produces the bulletin artifact. The artifact file must be fully
// flushed before Render returns.
type Renderer interface {
	Render(ctx context.Context, m models.Member) (document.Artifact, error)
}

// Notifier delivers the operator email. Called from a detached goroutine;
// its outcome is observed only for logging and metrics.
type Notifier interface {
	Notify(ctx context.Context, numero, fullName, artifactPath, photoPath string) error
}

// Service is the submission pipeline.
type Service struct {
	numbers  counter.Source
	records  RecordStore
	renderer Renderer
	notifier Notifier
	payments payment.Initiator
	metrics  *metrics.Metrics
	log      *slog.Logger

	notifications sync.WaitGroup
}

// New wires the pipeline from its collaborators.
func New(
	numbers counter.Source,
	records RecordStore,
	renderer Renderer,
	notifier Notifier,
	payments payment.Initiator,
	m *metrics.Metrics,
	log *slog.Logger,
) *Service {
	return &Service{
		numbers:  numbers,
		records:  records,
		renderer: renderer,
		notifier: notifier,
		payments: payments,
		metrics:  m,
		log:      log,
	}
}

// Result is what the HTTP layer returns to the caller. PaymentURL is empty
// when no payment was requested or initiation failed.
type Result struct {
	Numero     string
	PaymentURL string
}

// Submit runs the pipeline for one validated submission. The numero is
// assigned before any other mutation; counter and persistence failures are
// fatal, everything after persistence degrades the result instead of
// failing it. The record is never rolled back once saved.
func (s *Service) Submit(ctx context.Context, m models.Member) (Result, error) {
	n, err := s.numbers.Next(ctx)
	if err != nil {
		s.metrics.Submissions.WithLabelValues(metrics.OutcomeError).Inc()
		return Result{}, fmt.Errorf("acquire membership number: %w", err)
	}
	m.Numero = counter.Format(n)

	if err := s.records.Save(ctx, m); err != nil {
		s.metrics.Submissions.WithLabelValues(metrics.OutcomeError).Inc()
		return Result{}, fmt.Errorf("persist record %s: %w", m.Numero, err)
	}

	start := time.Now()
	artifact, err := s.renderer.Render(ctx, m)
	if err != nil {
		// Record is already durable; the bulletin can be regenerated later.
		s.log.ErrorContext(ctx, "bulletin render failed", "numero", m.Numero, "error", err)
	} else {
		s.metrics.RenderDuration.Observe(time.Since(start).Seconds())
		s.dispatchNotification(ctx, m, artifact)
	}

	result := Result{Numero: m.Numero}
	if m.WantsPayment() {
		amount := payment.Amount(m)
		url, err := s.payments.Initiate(ctx, m, amount)
		if err != nil {
			s.metrics.PaymentInitiations.WithLabelValues(metrics.OutcomeError).Inc()
			s.log.ErrorContext(ctx, "payment initiation failed",
				"numero", m.Numero, "amount", amount, "error", err)
		} else {
			s.metrics.PaymentInitiations.WithLabelValues(metrics.OutcomeOK).Inc()
			result.PaymentURL = url
		}
	}

	s.metrics.Submissions.WithLabelValues(metrics.OutcomeOK).Inc()
	return result, nil
}

// dispatchNotification fires the operator email once the artifact is on
// disk. The response path does not wait on it.
func (s *Service) dispatchNotification(ctx context.Context, m models.Member, artifact document.Artifact) {
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	s.notifications.Add(1)
	go func() {
		defer s.notifications.Done()
		defer cancel()
		if err := s.notifier.Notify(nctx, m.Numero, m.FullName(), artifact.Path, m.PhotoPath); err != nil {
			s.metrics.Notifications.WithLabelValues(metrics.OutcomeError).Inc()
			s.log.ErrorContext(nctx, "notification failed", "numero", m.Numero, "error", err)
			return
		}
		s.metrics.Notifications.WithLabelValues(metrics.OutcomeOK).Inc()
	}()
}

// DrainNotifications blocks until all in-flight notification sends finish.
// Called during graceful shutdown and from tests.
func (s *Service) DrainNotifications() {
	s.notifications.Wait()
}
