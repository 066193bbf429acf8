package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"walkaway/internal/models"
)

type fakeLedger struct {
	mu   sync.Mutex
	rows [][]any
	err  error
}

func (f *fakeLedger) Append(_ context.Context, row []any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeLedger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeNotifier struct {
	name    string
	err     error
	panics  bool
	release chan struct{}
	waitCtx bool

	mu    sync.Mutex
	leads []models.LeadRecord
}

func (f *fakeNotifier) Name() string { return f.name }

func (f *fakeNotifier) Notify(ctx context.Context, lead models.LeadRecord) error {
	f.mu.Lock()
	f.leads = append(f.leads, lead)
	f.mu.Unlock()

	if f.release != nil {
		<-f.release
	}
	if f.waitCtx {
		<-ctx.Done()
		return ctx.Err()
	}
	if f.panics {
		panic("boom")
	}
	return f.err
}

func (f *fakeNotifier) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.leads)
}

type outcomeLog struct {
	mu  sync.Mutex
	out []Outcome
}

func (o *outcomeLog) record(out Outcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.out = append(o.out, out)
}

func (o *outcomeLog) byChannel() map[string]Outcome {
	o.mu.Lock()
	defer o.mu.Unlock()
	m := make(map[string]Outcome, len(o.out))
	for _, out := range o.out {
		m[out.Channel] = out
	}
	return m
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func validLead() models.LeadRecord {
	return models.LeadRecord{
		Name:       "Jane Seller",
		Email:      "jane@example.com",
		Phone:      "260-555-1234",
		Address:    "123 Main St",
		SquareFeet: 1650,
		Condition:  models.ConditionAverage,
		Timeline:   models.TimelineThreeToSix,
		Estimate:   Estimate(models.PropertyInput{SquareFeet: 1650, Condition: models.ConditionAverage}),
	}
}

var fixedNow = time.Date(2026, 3, 14, 15, 9, 26, 535000000, time.UTC)

func newTestDispatcher(ledger Ledger, notifiers ...Notifier) (*LeadDispatcher, *outcomeLog) {
	outcomes := &outcomeLog{}
	d := NewLeadDispatcher(ledger, notifiers, quietLogger()).
		WithClock(func() time.Time { return fixedNow }).
		WithIDGenerator(func() string { return "sub-1" }).
		WithOutcomeRecorder(outcomes.record)
	return d, outcomes
}

func TestDispatcher_ValidationListsEveryProblem(t *testing.T) {
	ledger := &fakeLedger{}
	email := &fakeNotifier{name: "email"}
	d, _ := newTestDispatcher(ledger, email)

	_, err := d.Submit(context.Background(), models.LeadRecord{Name: "  ", SquareFeet: 0})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	want := "Name is required; Email is required; Phone is required; Square footage must be > 0"
	if verr.Error() != want {
		t.Fatalf("expected %q got %q", want, verr.Error())
	}
	d.Wait()
	if ledger.count() != 0 || email.calls() != 0 {
		t.Fatalf("validation failure must not have side effects: rows=%d email=%d", ledger.count(), email.calls())
	}
}

func TestDispatcher_ValidationSingleField(t *testing.T) {
	d, _ := newTestDispatcher(&fakeLedger{})
	lead := validLead()
	lead.Phone = "   "

	_, err := d.Submit(context.Background(), lead)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Problems) != 1 || verr.Problems[0] != "Phone is required" {
		t.Fatalf("unexpected problems: %v", verr.Problems)
	}
}

func TestDispatcher_MissingLedgerIsConfigurationError(t *testing.T) {
	email := &fakeNotifier{name: "email"}
	d, _ := newTestDispatcher(nil, email)

	_, err := d.Submit(context.Background(), validLead())
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	d.Wait()
	if email.calls() != 0 {
		t.Fatal("no notification may be attempted without a ledger")
	}
}

func TestDispatcher_LedgerFailureStopsFanOut(t *testing.T) {
	cause := errors.New("quota exceeded")
	ledger := &fakeLedger{err: cause}
	email := &fakeNotifier{name: "email"}
	sms := &fakeNotifier{name: "sms"}
	d, _ := newTestDispatcher(ledger, email, sms)

	_, err := d.Submit(context.Background(), validLead())
	if !errors.Is(err, ErrLedgerWrite) {
		t.Fatalf("expected ErrLedgerWrite, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected underlying cause to be wrapped, got %v", err)
	}
	d.Wait()
	if email.calls() != 0 || sms.calls() != 0 {
		t.Fatalf("notifications must not run after ledger failure: email=%d sms=%d", email.calls(), sms.calls())
	}
}

func TestDispatcher_SuccessWritesRowAndNotifies(t *testing.T) {
	ledger := &fakeLedger{}
	email := &fakeNotifier{name: "email"}
	sms := &fakeNotifier{name: "sms"}
	d, outcomes := newTestDispatcher(ledger, email, sms)

	ack, err := d.Submit(context.Background(), validLead())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if ack.SubmissionID != "sub-1" || !ack.SubmittedAt.Equal(fixedNow) {
		t.Fatalf("unexpected ack: %+v", ack)
	}
	if ledger.count() != 1 {
		t.Fatalf("expected one ledger row, got %d", ledger.count())
	}
	if got := ledger.rows[0][0]; got != "2026-03-14T15:09:26.535Z" {
		t.Fatalf("expected timestamp column, got %v", got)
	}

	d.Wait()
	if email.calls() != 1 || sms.calls() != 1 {
		t.Fatalf("expected one attempt per channel: email=%d sms=%d", email.calls(), sms.calls())
	}
	if !email.leads[0].SubmittedAt.Equal(fixedNow) {
		t.Fatal("notifiers should see the stamped submission time")
	}
	for ch, out := range outcomes.byChannel() {
		if out.Status != OutcomeSent || out.SubmissionID != "sub-1" {
			t.Fatalf("%s: unexpected outcome %+v", ch, out)
		}
	}
}

func TestDispatcher_FailingEmailDoesNotBlockSMS(t *testing.T) {
	ledger := &fakeLedger{}
	email := &fakeNotifier{name: "email", err: errors.New("smtp: 535 auth failed")}
	sms := &fakeNotifier{name: "sms"}
	d, outcomes := newTestDispatcher(ledger, email, sms)

	if _, err := d.Submit(context.Background(), validLead()); err != nil {
		t.Fatalf("submit must succeed when a notification fails: %v", err)
	}
	d.Wait()

	if sms.calls() != 1 {
		t.Fatalf("expected sms attempt despite email failure, got %d", sms.calls())
	}
	got := outcomes.byChannel()
	if got["email"].Status != OutcomeFailed || got["email"].Err == nil {
		t.Fatalf("expected email failure recorded, got %+v", got["email"])
	}
	if got["sms"].Status != OutcomeSent {
		t.Fatalf("expected sms sent, got %+v", got["sms"])
	}
}

func TestDispatcher_PanickingNotifierIsIsolated(t *testing.T) {
	email := &fakeNotifier{name: "email", panics: true}
	sms := &fakeNotifier{name: "sms"}
	d, outcomes := newTestDispatcher(&fakeLedger{}, email, sms)

	if _, err := d.Submit(context.Background(), validLead()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	d.Wait()

	got := outcomes.byChannel()
	if got["email"].Status != OutcomeFailed {
		t.Fatalf("expected panic recorded as failure, got %+v", got["email"])
	}
	if got["sms"].Status != OutcomeSent {
		t.Fatalf("expected sms sent, got %+v", got["sms"])
	}
}

func TestDispatcher_SkippedChannel(t *testing.T) {
	sms := &fakeNotifier{name: "sms", err: ErrChannelSkipped}
	d, outcomes := newTestDispatcher(&fakeLedger{}, sms)

	if _, err := d.Submit(context.Background(), validLead()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	d.Wait()
	if got := outcomes.byChannel()["sms"]; got.Status != OutcomeSkipped {
		t.Fatalf("expected skipped, got %+v", got)
	}
}

func TestDispatcher_SubmitDoesNotWaitForNotifications(t *testing.T) {
	release := make(chan struct{})
	slow := &fakeNotifier{name: "email", release: release}
	d, outcomes := newTestDispatcher(&fakeLedger{}, slow)

	done := make(chan error, 1)
	go func() {
		_, err := d.Submit(context.Background(), validLead())
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Submit blocked on a pending notification")
	}

	close(release)
	d.Wait()
	if got := outcomes.byChannel()["email"]; got.Status != OutcomeSent {
		t.Fatalf("expected email sent after release, got %+v", got)
	}
}

func TestDispatcher_NotificationsSurviveRequestCancellation(t *testing.T) {
	release := make(chan struct{})
	email := &fakeNotifier{name: "email", release: release}
	d, outcomes := newTestDispatcher(&fakeLedger{}, email)

	ctx, cancel := context.WithCancel(context.Background())
	if _, err := d.Submit(ctx, validLead()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	cancel()
	close(release)
	d.Wait()

	if got := outcomes.byChannel()["email"]; got.Status != OutcomeSent {
		t.Fatalf("expected email sent after request cancel, got %+v", got)
	}
}

func TestDispatcher_NotifyTimeout(t *testing.T) {
	hung := &fakeNotifier{name: "sms", waitCtx: true}
	d, outcomes := newTestDispatcher(&fakeLedger{}, hung)
	d.WithTimeouts(0, 20*time.Millisecond)

	if _, err := d.Submit(context.Background(), validLead()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	d.Wait()

	got := outcomes.byChannel()["sms"]
	if got.Status != OutcomeFailed || !errors.Is(got.Err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline failure, got %+v", got)
	}
}

func TestDispatcher_NoDeduplication(t *testing.T) {
	ledger := &fakeLedger{}
	email := &fakeNotifier{name: "email"}
	ids := []string{"a", "b"}
	d := NewLeadDispatcher(ledger, []Notifier{email}, quietLogger()).
		WithIDGenerator(func() string {
			id := ids[0]
			ids = ids[1:]
			return id
		})

	var acks []string
	for i := 0; i < 2; i++ {
		ack, err := d.Submit(context.Background(), validLead())
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		acks = append(acks, ack.SubmissionID)
	}
	d.Wait()

	sort.Strings(acks)
	if ledger.count() != 2 || email.calls() != 2 {
		t.Fatalf("expected two rows and two attempts, got rows=%d email=%d", ledger.count(), email.calls())
	}
	if acks[0] != "a" || acks[1] != "b" {
		t.Fatalf("expected distinct submission ids, got %v", acks)
	}
}

func TestDispatcher_DrainSkipsLaterFanOuts(t *testing.T) {
	ledger := &fakeLedger{}
	email := &fakeNotifier{name: "email"}
	d, outcomes := newTestDispatcher(ledger, email)

	d.Drain()
	if _, err := d.Submit(context.Background(), validLead()); err != nil {
		t.Fatalf("submit after drain: %v", err)
	}
	d.Wait()

	if ledger.count() != 1 {
		t.Fatalf("expected ledger row after drain, got %d", ledger.count())
	}
	if email.calls() != 0 {
		t.Fatalf("expected no notification after drain, got %d", email.calls())
	}
	got := outcomes.byChannel()["email"]
	if got.Status != OutcomeSkipped || !errors.Is(got.Err, ErrChannelSkipped) {
		t.Fatalf("expected skipped outcome, got %+v", got)
	}
}

func TestDispatcher_DrainWhileSubmitting(t *testing.T) {
	ledger := &fakeLedger{}
	email := &fakeNotifier{name: "email"}
	d := NewLeadDispatcher(ledger, []Notifier{email}, quietLogger())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if _, err := d.Submit(context.Background(), validLead()); err != nil {
					t.Errorf("submit: %v", err)
					return
				}
			}
		}()
	}
	d.Drain()
	wg.Wait()
	d.Drain()

	if ledger.count() != 160 {
		t.Fatalf("expected every lead in the ledger, got %d", ledger.count())
	}
	if email.calls() > 160 {
		t.Fatalf("unexpected notification count %d", email.calls())
	}
}
