package main

import (
	"fmt"
	"time"

	"github.com/jacksmith/hp/internal/notify"
	"github.com/spf13/cobra"
)

var remindCmd = &cobra.Command{
	Use:   "remind <id>",
	Short: "Schedule a reminder to contact a prospect",
	Long: `Schedule a one-shot reminder to contact a prospect.

The first time, hp asks whether it may send reminders and remembers the
answer (see "hp notifications"). Reminders fire after reminder_delay, or at
reminder_hour when that is set in .hpconfig.yaml, and are shown by
"hp reminders watch".`,
	Args:              cobra.ExactArgs(1),
	RunE:              runRemind,
	ValidArgsFunction: completeProspectIDs,
}

func init() {
	rootCmd.AddCommand(remindCmd)
}

func runRemind(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	p, err := w.resolve(args[0])
	if err != nil {
		return err
	}

	sched := notify.NewScheduler(w.center(true), w.trigger(), w.logger, nil)
	res, err := sched.ScheduleReminder(commandContext(cmd), p)
	if err != nil {
		return err
	}

	switch res.Outcome {
	case notify.OutcomeScheduled:
		fmt.Printf("Reminder set for %s\n", res.Request.FireAt.Format(time.DateTime))
	default:
		fmt.Println("Reminders are not allowed (run `hp notifications allow`)")
	}
	return nil
}
