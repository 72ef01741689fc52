package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gopkg.in/gomail.v2"
)

// Outbox hands out reminders that are due.
type Outbox interface {
	TakeDue(now time.Time) ([]Request, error)
}

// Deliverer shows a due reminder to the user.
type Deliverer interface {
	Name() string
	Deliver(ctx context.Context, r Request) error
}

// Dispatcher moves due reminders from an Outbox to its deliverers.
// A reminder is taken from the outbox before delivery, so a failed delivery
// is logged and not retried.
type Dispatcher struct {
	outbox     Outbox
	deliverers []Deliverer
	logger     *slog.Logger
	metrics    *Metrics
	now        func() time.Time
}

// NewDispatcher returns a dispatcher. logger and metrics may be nil.
func NewDispatcher(outbox Outbox, deliverers []Deliverer, logger *slog.Logger, metrics *Metrics) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{
		outbox:     outbox,
		deliverers: deliverers,
		logger:     logger,
		metrics:    metrics,
		now:        time.Now,
	}
}

// RunOnce delivers every reminder due now and returns how many were taken.
func (d *Dispatcher) RunOnce(ctx context.Context) (int, error) {
	due, err := d.outbox.TakeDue(d.now())
	if err != nil {
		return 0, fmt.Errorf("take due reminders: %w", err)
	}
	for _, r := range due {
		for _, dl := range d.deliverers {
			err := dl.Deliver(ctx, r)
			d.metrics.delivery(dl.Name(), err)
			if err != nil {
				d.logger.Warn("reminder delivery failed", "deliverer", dl.Name(), "request", r.ID, "err", err)
			}
		}
	}
	return len(due), nil
}

// Run calls RunOnce immediately and then every interval until ctx is done.
// Errors are logged and do not stop the loop.
func (d *Dispatcher) Run(ctx context.Context, every time.Duration) error {
	d.logger.Info("reminder dispatcher started", "every", every)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	d.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("reminder dispatcher stopped")
			return ctx.Err()
		case <-ticker.C:
			d.tick(ctx)
		}
	}
}

func (d *Dispatcher) tick(ctx context.Context) {
	n, err := d.RunOnce(ctx)
	if err != nil {
		d.logger.Warn("reminder dispatch failed", "err", err)
		return
	}
	if n > 0 {
		d.logger.Debug("reminders delivered", "count", n)
	}
}

// TerminalDeliverer writes reminders to w.
type TerminalDeliverer struct {
	w     io.Writer
	style func(string) string
}

// NewTerminalDeliverer returns a deliverer writing to w. style decorates the
// title and may be nil.
func NewTerminalDeliverer(w io.Writer, style func(string) string) *TerminalDeliverer {
	if style == nil {
		style = func(s string) string { return s }
	}
	return &TerminalDeliverer{w: w, style: style}
}

// Name implements Deliverer.
func (t *TerminalDeliverer) Name() string { return "terminal" }

// Deliver implements Deliverer.
func (t *TerminalDeliverer) Deliver(ctx context.Context, r Request) error {
	line := "Reminder: " + t.style(r.Title)
	if r.Subtitle != "" {
		line += " <" + r.Subtitle + ">"
	}
	if r.Sound {
		line += "\a"
	}
	_, err := fmt.Fprintln(t.w, line)
	return err
}

// MailDeliverer sends reminders by email over SMTP.
type MailDeliverer struct {
	from string
	to   string
	send func(m ...*gomail.Message) error
}

// NewMailDeliverer returns a deliverer sending from -> to through host.
func NewMailDeliverer(host string, port int, user, password, from, to string) *MailDeliverer {
	if from == "" {
		from = to
	}
	d := gomail.NewDialer(host, port, user, password)
	return &MailDeliverer{from: from, to: to, send: d.DialAndSend}
}

// Name implements Deliverer.
func (m *MailDeliverer) Name() string { return "mail" }

// Deliver implements Deliverer.
func (m *MailDeliverer) Deliver(ctx context.Context, r Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.send(m.message(r)); err != nil {
		return fmt.Errorf("send reminder email: %w", err)
	}
	return nil
}

func (m *MailDeliverer) message(r Request) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", r.Title)

	body := r.Title
	if r.Subtitle != "" {
		body += "\n" + r.Subtitle
	}
	msg.SetBody("text/plain", body)
	return msg
}
