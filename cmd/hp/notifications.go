package main

import (
	"fmt"

	"github.com/jacksmith/hp/internal/cli"
	"github.com/jacksmith/hp/internal/notify"
	"github.com/spf13/cobra"
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications [allow|deny|reset]",
	Short: "Show or change whether hp may send reminders",
	Long: `Show whether hp may send reminders, or change it.

  allow   Reminders are scheduled without asking
  deny    Reminders are never scheduled
  reset   Ask again the next time a reminder is scheduled`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: notificationActions,
	RunE:      runNotifications,
}

var notificationActions = []string{"allow", "deny", "reset"}

func init() {
	rootCmd.AddCommand(notificationsCmd)
}

func runNotifications(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	center := w.center(false)
	if len(args) == 1 {
		action, err := cli.MatchChoice("action", args[0], notificationActions)
		if err != nil {
			return err
		}
		status := map[string]notify.Status{
			"allow": notify.StatusAuthorized,
			"deny":  notify.StatusDenied,
			"reset": notify.StatusNotDetermined,
		}[action]
		if err := center.SetStatus(status); err != nil {
			return err
		}
	}

	status, err := center.AuthorizationStatus(commandContext(cmd))
	if err != nil {
		return err
	}
	fmt.Printf("Notifications: %s\n", describeStatus(status))
	return nil
}

func describeStatus(s notify.Status) string {
	switch s {
	case notify.StatusAuthorized:
		return cli.Green("allowed")
	case notify.StatusDenied:
		return "denied"
	default:
		return "not decided (hp will ask)"
	}
}
