package notify

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeOutbox struct {
	mu    sync.Mutex
	due   []Request
	err   error
	taken int
}

func (f *fakeOutbox) TakeDue(now time.Time) ([]Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.taken++
	due := f.due
	f.due = nil
	return due, f.err
}

func (f *fakeOutbox) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.taken
}

type recordingDeliverer struct {
	name string
	got  []Request
	err  error
}

func (r *recordingDeliverer) Name() string { return r.name }

func (r *recordingDeliverer) Deliver(ctx context.Context, req Request) error {
	r.got = append(r.got, req)
	return r.err
}

func TestDispatcherRunOnce(t *testing.T) {
	r1 := NewRequest(paul, time.Now())
	r2 := NewRequest(paul, time.Now())
	outbox := &fakeOutbox{due: []Request{r1, r2}}

	ok := &recordingDeliverer{name: "ok"}
	broken := &recordingDeliverer{name: "broken", err: errors.New("offline")}

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	d := NewDispatcher(outbox, []Deliverer{broken, ok}, nil, m)

	n, err := d.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// A failing deliverer does not stop the others.
	assert.Equal(t, []Request{r1, r2}, ok.got)
	assert.Equal(t, []Request{r1, r2}, broken.got)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.delivered.WithLabelValues("ok", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.delivered.WithLabelValues("broken", "error")))

	n, err = d.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestDispatcherRunOnceOutboxError(t *testing.T) {
	d := NewDispatcher(&fakeOutbox{err: errors.New("locked")}, nil, nil, nil)
	_, err := d.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestDispatcherRunStopsOnCancel(t *testing.T) {
	outbox := &fakeOutbox{due: []Request{NewRequest(paul, time.Now())}}
	rec := &recordingDeliverer{name: "rec"}
	d := NewDispatcher(outbox, []Deliverer{rec}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx, time.Hour) }()

	// The first pass runs immediately.
	require.Eventually(t, func() bool { return outbox.calls() > 0 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}
	assert.Len(t, rec.got, 1)
}

func TestTerminalDeliverer(t *testing.T) {
	var buf bytes.Buffer
	d := NewTerminalDeliverer(&buf, nil)

	r := NewRequest(paul, time.Now())
	r.Sound = false
	require.NoError(t, d.Deliver(context.Background(), r))
	assert.Equal(t, "Reminder: Contact Paul Hudson <paul@hackingwithswift.com>\n", buf.String())

	buf.Reset()
	r.Subtitle = ""
	r.Sound = true
	require.NoError(t, d.Deliver(context.Background(), r))
	assert.Equal(t, "Reminder: Contact Paul Hudson\a\n", buf.String())
}

func TestMailDeliverer(t *testing.T) {
	m := NewMailDeliverer("smtp.example.com", 587, "me", "secret", "", "me@example.com")

	var sent []*gomail.Message
	m.send = func(msgs ...*gomail.Message) error {
		sent = append(sent, msgs...)
		return nil
	}

	require.NoError(t, m.Deliver(context.Background(), NewRequest(paul, time.Now())))
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"Contact Paul Hudson"}, sent[0].GetHeader("Subject"))
	assert.Equal(t, []string{"me@example.com"}, sent[0].GetHeader("To"))
	assert.Equal(t, []string{"me@example.com"}, sent[0].GetHeader("From"))

	m.send = func(...*gomail.Message) error { return errors.New("connection refused") }
	err := m.Deliver(context.Background(), NewRequest(paul, time.Now()))
	assert.ErrorContains(t, err, "connection refused")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Deliver(ctx, NewRequest(paul, time.Now())), context.Canceled)
}
