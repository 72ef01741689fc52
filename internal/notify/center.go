// Package notify schedules and delivers contact reminders.
//
// The Scheduler only talks to a notification Center through its narrow
// contract: query authorization, request authorization, submit a request.
// LocalCenter is the Center hp ships with; it keeps authorization and the
// pending reminders in .hp/notifications.yaml, and a Dispatcher delivers
// them when they fall due.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jacksmith/hp/internal/model"
)

// Status is the permission state of the notification center.
type Status string

const (
	StatusUnknown       Status = ""
	StatusNotDetermined Status = "notDetermined"
	StatusAuthorized    Status = "authorized"
	StatusDenied        Status = "denied"
)

// Options are the capabilities asked for when requesting authorization.
type Options struct {
	Alert bool `yaml:"alert"`
	Badge bool `yaml:"badge"`
	Sound bool `yaml:"sound"`
}

// AllOptions asks for alerts, badges and sounds.
var AllOptions = Options{Alert: true, Badge: true, Sound: true}

// Request is a one-shot reminder.
type Request struct {
	ID         uuid.UUID `yaml:"id" json:"id"`
	ProspectID uuid.UUID `yaml:"prospect" json:"prospect"`
	Title      string    `yaml:"title" json:"title"`
	Subtitle   string    `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Sound      bool      `yaml:"sound,omitempty" json:"sound"`
	FireAt     time.Time `yaml:"fire_at" json:"fireAt"`
}

// NewRequest builds the reminder for p, firing at fireAt.
func NewRequest(p model.Prospect, fireAt time.Time) Request {
	return Request{
		ID:         uuid.New(),
		ProspectID: p.ID,
		Title:      "Contact " + p.Name,
		Subtitle:   p.EmailAddress,
		Sound:      true,
		FireAt:     fireAt,
	}
}

// Center is the notification subsystem the scheduler depends on.
type Center interface {
	AuthorizationStatus(ctx context.Context) (Status, error)
	RequestAuthorization(ctx context.Context, opts Options) (granted bool, err error)
	Submit(ctx context.Context, r Request) error
}

// Trigger decides when a reminder fires.
//
// By default a reminder fires Delay after it is scheduled. With Daily set it
// fires at the next Hour:00 local time instead.
type Trigger struct {
	Delay time.Duration
	Daily bool
	Hour  int
}

// AfterDelay returns a trigger firing d after scheduling.
func AfterDelay(d time.Duration) Trigger {
	return Trigger{Delay: d}
}

// AtHour returns a trigger firing at the next hour:00 local time.
func AtHour(hour int) Trigger {
	return Trigger{Daily: true, Hour: hour}
}

// Next returns the fire time for a reminder scheduled at now.
func (t Trigger) Next(now time.Time) time.Time {
	if !t.Daily {
		return now.Add(t.Delay)
	}
	next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
