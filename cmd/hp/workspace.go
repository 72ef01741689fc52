package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jacksmith/hp/internal/cli"
	"github.com/jacksmith/hp/internal/model"
	"github.com/jacksmith/hp/internal/notify"
	"github.com/jacksmith/hp/internal/ops"
	"github.com/jacksmith/hp/internal/storage"
	"github.com/spf13/cobra"
)

// workspace bundles what commands need from the current directory.
type workspace struct {
	storage *storage.Storage
	config  *storage.Config
	logger  *slog.Logger
	store   *ops.Store
	closer  io.Closer
}

// openWorkspace opens .hp/ in the current directory and loads prospects.
func openWorkspace() (*workspace, error) {
	s, err := storage.Open(".")
	if err != nil {
		return nil, err
	}
	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)

	adapter, closer, err := s.OpenAdapter()
	if err != nil {
		return nil, err
	}
	return &workspace{
		storage: s,
		config:  cfg,
		logger:  logger,
		store:   ops.NewStore(adapter, logger),
		closer:  closer,
	}, nil
}

func (w *workspace) Close() error {
	return w.closer.Close()
}

// resolve looks up a prospect by ID or unique prefix.
func (w *workspace) resolve(ref string) (model.Prospect, error) {
	p, err := w.store.Resolve(ref)
	if err != nil {
		return model.Prospect{}, cli.LookupError(ref, err)
	}
	return p, nil
}

// stdinIsTerminal decides whether hp may prompt.
var stdinIsTerminal = func() bool { return cli.IsTerminal(os.Stdin) }

// center returns the notification center, prompting on a terminal.
func (w *workspace) center(interactive bool) *notify.LocalCenter {
	var auth notify.Authorizer
	if interactive && stdinIsTerminal() {
		auth = promptAuthorizer(os.Stdin, os.Stderr)
	}
	return notify.NewLocalCenter(w.storage.NotificationsPath(), auth)
}

func (w *workspace) trigger() notify.Trigger {
	if w.config.ReminderHour >= 0 {
		return notify.AtHour(w.config.ReminderHour)
	}
	return notify.AfterDelay(w.config.ReminderDelay)
}

// deliverers returns the terminal deliverer plus mail when configured.
func (w *workspace) deliverers() []notify.Deliverer {
	ds := []notify.Deliverer{notify.NewTerminalDeliverer(os.Stdout, cli.Bold)}
	if c := w.config; c.MailEnabled() {
		from := c.SMTPFrom
		if from == "" {
			from = c.NotifyEmail
		}
		ds = append(ds, notify.NewMailDeliverer(c.SMTPHost, c.SMTPPort, c.SMTPUser, c.SMTPPassword, from, c.NotifyEmail))
	}
	return ds
}

func newLogger(cfg *storage.Config) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// promptAuthorizer asks on out and reads a yes/no answer from in.
// End of input counts as no.
func promptAuthorizer(in io.Reader, out io.Writer) notify.Authorizer {
	return notify.AuthorizerFunc(func(ctx context.Context, opts notify.Options) (bool, error) {
		fmt.Fprint(out, "Allow hp to send reminders? [y/N] ")
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	})
}

// unsaved reports a failed save as a warning: the change still applies to
// this run. Any other error is returned.
func unsaved(err error) error {
	if errors.Is(err, ops.ErrNotPersisted) {
		fmt.Fprintln(os.Stderr, "warning: change was not saved")
		return nil
	}
	return err
}

// commandContext returns cmd's context, or Background when cmd has none.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
