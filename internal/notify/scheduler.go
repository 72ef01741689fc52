package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jacksmith/hp/internal/model"
)

// Outcome is how a ScheduleReminder call ended.
type Outcome string

const (
	// OutcomeScheduled means the request was submitted.
	OutcomeScheduled Outcome = "scheduled"
	// OutcomeRejected means notifications are not authorized.
	OutcomeRejected Outcome = "rejected"
	// OutcomeFailed means the center could not be queried or refused the
	// submission.
	OutcomeFailed Outcome = "failed"
)

// Result reports what ScheduleReminder did.
type Result struct {
	Outcome Outcome
	// Request is set when Outcome is OutcomeScheduled.
	Request Request
}

// Scheduler gates reminder submission behind the center's authorization.
//
// Reminders are not deduplicated: scheduling twice for the same prospect
// submits two independent requests.
type Scheduler struct {
	center  Center
	trigger Trigger
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

// NewScheduler returns a scheduler submitting to center. logger and metrics
// may be nil.
func NewScheduler(center Center, trigger Trigger, logger *slog.Logger, metrics *Metrics) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{
		center:  center,
		trigger: trigger,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// ScheduleReminder asks the center for permission if needed and submits a
// one-shot reminder for p.
//
// Authorized: the request is submitted. Not determined: authorization is
// requested first and the request is submitted only if granted. Denied (or
// any other status): nothing is requested or submitted.
func (s *Scheduler) ScheduleReminder(ctx context.Context, p model.Prospect) (Result, error) {
	res, err := s.schedule(ctx, p)
	s.metrics.observe(res.Outcome)
	return res, err
}

func (s *Scheduler) schedule(ctx context.Context, p model.Prospect) (Result, error) {
	log := s.logger.With("prospect", p.ID)

	status, err := s.center.AuthorizationStatus(ctx)
	if err != nil {
		log.Warn("could not read notification authorization", "err", err)
		return Result{Outcome: OutcomeFailed}, fmt.Errorf("authorization status: %w", err)
	}

	switch status {
	case StatusAuthorized:
	case StatusNotDetermined:
		granted, err := s.center.RequestAuthorization(ctx, AllOptions)
		if err != nil {
			log.Info("notification authorization request failed", "err", err)
			return Result{Outcome: OutcomeRejected}, fmt.Errorf("request authorization: %w", err)
		}
		if !granted {
			log.Info("notification authorization not granted")
			return Result{Outcome: OutcomeRejected}, nil
		}
	default:
		log.Debug("notifications not authorized", "status", status)
		return Result{Outcome: OutcomeRejected}, nil
	}

	req := NewRequest(p, s.trigger.Next(s.now()))
	if err := s.center.Submit(ctx, req); err != nil {
		log.Warn("could not submit reminder", "err", err)
		return Result{Outcome: OutcomeFailed}, fmt.Errorf("submit reminder: %w", err)
	}
	log.Debug("reminder scheduled", "request", req.ID, "fire_at", req.FireAt)
	return Result{Outcome: OutcomeScheduled, Request: req}, nil
}
