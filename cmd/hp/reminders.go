package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jacksmith/hp/internal/cli"
	"github.com/jacksmith/hp/internal/notify"
	"github.com/spf13/cobra"
)

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "List pending reminders",
	Long: `List reminders that have been scheduled but not delivered yet.

Use "hp reminders watch" to keep delivering reminders as they fall due, or
"hp reminders deliver" to deliver the ones already due and exit.`,
	Args: cobra.NoArgs,
	RunE: runReminders,
}

var remindersWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Deliver reminders as they fall due",
	Long: `Poll for due reminders and deliver them until interrupted.

Reminders are printed here, and also emailed to notify_email when SMTP is
configured. The poll interval is deliver_every in .hpconfig.yaml, or
--every.`,
	Args: cobra.NoArgs,
	RunE: runRemindersWatch,
}

var remindersDeliverCmd = &cobra.Command{
	Use:   "deliver",
	Short: "Deliver reminders that are due now",
	Args:  cobra.NoArgs,
	RunE:  runRemindersDeliver,
}

var remindersEvery time.Duration

func init() {
	remindersWatchCmd.Flags().DurationVar(&remindersEvery, "every", 0, "poll interval (default from config)")
	remindersCmd.AddCommand(remindersWatchCmd)
	remindersCmd.AddCommand(remindersDeliverCmd)
	rootCmd.AddCommand(remindersCmd)
}

func runReminders(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	pending, err := w.center(false).Pending()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println(cli.Gray("No pending reminders."))
		return nil
	}

	t := cli.NewTable()
	for _, r := range pending {
		t.AddRow(r.FireAt.Format(time.DateTime), r.Title, cli.Gray(r.Subtitle))
	}
	t.Render(os.Stdout)
	return nil
}

func runRemindersDeliver(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	d := notify.NewDispatcher(w.center(false), w.deliverers(), w.logger, nil)
	n, err := d.RunOnce(commandContext(cmd))
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Println(cli.Gray("No reminders due."))
	}
	return nil
}

func runRemindersWatch(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	every := remindersEvery
	if every <= 0 {
		every = w.config.DeliverEvery
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w.logger.Info("watching for reminders", "every", every)
	d := notify.NewDispatcher(w.center(false), w.deliverers(), w.logger, nil)
	return d.Run(ctx, every)
}
