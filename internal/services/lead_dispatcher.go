package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"walkaway/internal/models"
)

const (
	defaultLedgerTimeout = 10 * time.Second
	defaultNotifyTimeout = 10 * time.Second
)

// Ledger appends one positional row to the external lead store.
type Ledger interface {
	Append(ctx context.Context, row []any) error
}

// Notifier is one best-effort delivery channel. Returning an error wrapping
// ErrChannelSkipped records the attempt as skipped rather than failed.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, lead models.LeadRecord) error
}

// Outcome is the result of a single notification attempt.
type Outcome struct {
	SubmissionID string
	Channel      string
	Status       OutcomeStatus
	Err          error
}

type OutcomeStatus string

const (
	OutcomeSent    OutcomeStatus = "sent"
	OutcomeSkipped OutcomeStatus = "skipped"
	OutcomeFailed  OutcomeStatus = "failed"
)

// Ack confirms that the lead reached the ledger.
type Ack struct {
	SubmissionID string
	SubmittedAt  time.Time
}

// LeadDispatcher writes a lead to the ledger and then fans it out to the
// notifiers. Only validation and the ledger write decide the result of Submit;
// notifications run detached and are never awaited by the caller.
type LeadDispatcher struct {
	ledger    Ledger
	notifiers []Notifier
	log       *logrus.Logger
	tracer    trace.Tracer

	now           func() time.Time
	idGenerator   func() string
	ledgerTimeout time.Duration
	notifyTimeout time.Duration
	onOutcome     func(Outcome)

	mu       sync.Mutex
	draining bool
	inflight sync.WaitGroup
}

// NewLeadDispatcher builds a dispatcher. A nil ledger means the ledger is not
// configured and every submission fails with ErrConfiguration.
func NewLeadDispatcher(ledger Ledger, notifiers []Notifier, log *logrus.Logger) *LeadDispatcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LeadDispatcher{
		ledger:        ledger,
		notifiers:     notifiers,
		log:           log,
		tracer:        otel.Tracer("walkaway/internal/services"),
		now:           time.Now,
		idGenerator:   func() string { return uuid.NewString() },
		ledgerTimeout: defaultLedgerTimeout,
		notifyTimeout: defaultNotifyTimeout,
	}
}

func (d *LeadDispatcher) WithClock(now func() time.Time) *LeadDispatcher {
	d.now = now
	return d
}

func (d *LeadDispatcher) WithIDGenerator(gen func() string) *LeadDispatcher {
	d.idGenerator = gen
	return d
}

// WithTimeouts bounds each external call. Zero keeps the default.
func (d *LeadDispatcher) WithTimeouts(ledger, notify time.Duration) *LeadDispatcher {
	if ledger > 0 {
		d.ledgerTimeout = ledger
	}
	if notify > 0 {
		d.notifyTimeout = notify
	}
	return d
}

// WithOutcomeRecorder registers a callback invoked once per notification
// attempt. It runs on the fan-out goroutine.
func (d *LeadDispatcher) WithOutcomeRecorder(fn func(Outcome)) *LeadDispatcher {
	d.onOutcome = fn
	return d
}

// Submit validates the lead, appends it to the ledger and schedules the
// notifications. It returns as soon as the ledger write succeeds.
func (d *LeadDispatcher) Submit(ctx context.Context, lead models.LeadRecord) (Ack, error) {
	ctx, span := d.tracer.Start(ctx, "lead.submit")
	defer span.End()

	if err := ValidateLead(lead); err != nil {
		span.SetStatus(codes.Error, "validation")
		return Ack{}, err
	}
	if d.ledger == nil {
		d.log.Error("[lead] ledger is not configured")
		span.SetStatus(codes.Error, "configuration")
		return Ack{}, ErrConfiguration
	}

	lead.SubmittedAt = d.now().UTC()
	ack := Ack{SubmissionID: d.idGenerator(), SubmittedAt: lead.SubmittedAt}
	span.SetAttributes(attribute.String("submission.id", ack.SubmissionID))
	entry := d.log.WithFields(logrus.Fields{
		"submission_id": ack.SubmissionID,
		"email":         lead.Email,
	})

	if err := d.appendRow(ctx, lead); err != nil {
		entry.WithError(err).Error("[ledger] append failed")
		span.RecordError(err)
		span.SetStatus(codes.Error, "ledger")
		return Ack{}, fmt.Errorf("%w: %w", ErrLedgerWrite, err)
	}
	entry.Info("[lead] saved to ledger")

	// The fan-out outlives the request, so it keeps trace values but drops cancellation.
	d.fanOut(context.WithoutCancel(ctx), ack.SubmissionID, lead)
	return ack, nil
}

// Wait blocks until every scheduled fan-out has finished. It must not race
// with Submit; use Drain on shutdown.
func (d *LeadDispatcher) Wait() {
	d.inflight.Wait()
}

// Drain stops scheduling new fan-outs and waits for the running ones. Leads
// submitted afterwards are still written to the ledger, but their
// notifications are recorded as skipped.
func (d *LeadDispatcher) Drain() {
	d.mu.Lock()
	d.draining = true
	d.mu.Unlock()
	d.inflight.Wait()
}

func (d *LeadDispatcher) appendRow(ctx context.Context, lead models.LeadRecord) error {
	ctx, cancel := context.WithTimeout(ctx, d.ledgerTimeout)
	defer cancel()
	ctx, span := d.tracer.Start(ctx, "ledger.append")
	defer span.End()

	if err := d.ledger.Append(ctx, LedgerRow(lead)); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (d *LeadDispatcher) fanOut(ctx context.Context, submissionID string, lead models.LeadRecord) {
	if len(d.notifiers) == 0 {
		return
	}
	d.mu.Lock()
	if d.draining {
		d.mu.Unlock()
		for _, n := range d.notifiers {
			d.record(Outcome{
				SubmissionID: submissionID,
				Channel:      n.Name(),
				Status:       OutcomeSkipped,
				Err:          fmt.Errorf("%w: shutting down", ErrChannelSkipped),
			})
		}
		return
	}
	d.inflight.Add(1)
	d.mu.Unlock()
	go func() {
		defer d.inflight.Done()
		var g errgroup.Group
		for _, n := range d.notifiers {
			n := n
			g.Go(func() error {
				d.record(d.notify(ctx, submissionID, n, lead))
				return nil
			})
		}
		_ = g.Wait()
	}()
}

func (d *LeadDispatcher) notify(ctx context.Context, submissionID string, n Notifier, lead models.LeadRecord) (out Outcome) {
	out = Outcome{SubmissionID: submissionID, Channel: n.Name()}

	ctx, cancel := context.WithTimeout(ctx, d.notifyTimeout)
	defer cancel()
	ctx, span := d.tracer.Start(ctx, "notify."+n.Name())
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			out.Status = OutcomeFailed
			out.Err = fmt.Errorf("panic: %v", r)
			span.SetStatus(codes.Error, "panic")
		}
		span.SetAttributes(attribute.String("notify.outcome", string(out.Status)))
	}()

	err := n.Notify(ctx, lead)
	switch {
	case err == nil:
		out.Status = OutcomeSent
	case errors.Is(err, ErrChannelSkipped):
		out.Status = OutcomeSkipped
		out.Err = err
	default:
		out.Status = OutcomeFailed
		out.Err = err
		span.RecordError(err)
		span.SetStatus(codes.Error, "notify")
	}
	return out
}

func (d *LeadDispatcher) record(out Outcome) {
	entry := d.log.WithFields(logrus.Fields{
		"submission_id": out.SubmissionID,
		"channel":       out.Channel,
		"outcome":       out.Status,
	})
	switch out.Status {
	case OutcomeSent:
		entry.Info("[notify] sent")
	case OutcomeSkipped:
		entry.WithError(out.Err).Warn("[notify] skipped")
	default:
		entry.WithError(out.Err).Error("[notify] failed")
	}
	if d.onOutcome != nil {
		d.onOutcome(out)
	}
}
