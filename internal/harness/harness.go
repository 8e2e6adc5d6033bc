package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/roach88/providers/internal/form"
	"github.com/roach88/providers/internal/kv"
	"github.com/roach88/providers/internal/mirror"
	"github.com/roach88/providers/internal/notify"
	"github.com/roach88/providers/internal/provider"
	"github.com/roach88/providers/internal/store"
	"github.com/roach88/providers/internal/testutil"
)

// Harness holds the stack one scenario runs against.
type Harness struct {
	kv      *kv.Store
	mirror  *mirror.Mirror
	store   *store.Store
	ctrl    *form.Controller
	notices *recorder
	logger  *slog.Logger
	seq     int64
}

// recorder forwards notifications to a Center and remembers the most
// recent one so each step can report what it raised.
type recorder struct {
	center *notify.Center
	last   *Notice
}

func (r *recorder) Notify(kind notify.Kind, message string) {
	r.center.Notify(kind, message)
	r.last = &Notice{Kind: string(kind), Message: message}
}

// take returns the notice raised since the previous call, if any.
func (r *recorder) take() *Notice {
	n := r.last
	r.last = nil
	return n
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Ids are sequential, so the trace is reproducible.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with the stack logging to logger.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	kvs, err := kv.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer kvs.Close()

	ctx := context.Background()
	m := mirror.New(kvs, mirror.DefaultKey, logger)

	if len(scenario.Seed) > 0 {
		m.Save(ctx, scenario.Seed)
	}
	st := store.New(m)
	st.ReplaceAll(ctx, m.Load(ctx))

	ids := testutil.NewSequenceIDsAfter(startID(scenario))
	rec := &recorder{center: notify.NewCenter()}

	h := &Harness{
		kv:      kvs,
		mirror:  m,
		store:   st,
		ctrl:    form.New(st, ids, rec, form.WithLogger(logger)),
		notices: rec,
		logger:  logger,
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		event, err := h.apply(ctx, step)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		result.Trace = append(result.Trace, event)
		checkExpect(result, i, step.Expect, event)
		h.logger.Debug("step applied", "step", i, "action", step.Action, "outcome", event.Outcome)
	}

	result.Records = st.Snapshot()
	result.Mode = h.ctrl.Mode().String()
	result.Draft = h.ctrl.Draft()
	result.Persisted = m.Load(ctx)
	if result.StorageKeys, err = kvs.Keys(ctx); err != nil {
		return nil, fmt.Errorf("failed to list storage keys: %w", err)
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

// startID is the id after which the generator starts counting.
func startID(s *Scenario) int64 {
	if s.FirstID > 0 {
		return s.FirstID - 1
	}
	var last int64
	for _, r := range s.Seed {
		last = max(last, r.ID)
	}
	return last
}

// apply performs one step and builds its trace event.
func (h *Harness) apply(ctx context.Context, step Step) (TraceEvent, error) {
	h.seq++
	event := TraceEvent{
		Seq:     h.seq,
		Action:  step.Action,
		Outcome: OutcomeOK,
	}

	switch step.Action {
	case ActionChange:
		field, err := provider.ParseField(step.Field)
		if err != nil {
			return TraceEvent{}, err
		}
		h.ctrl.OnFieldChange(field, step.Value)
		event.Args = map[string]string{"field": step.Field, "value": step.Value}

	case ActionFill:
		event.Args = make(map[string]string, len(step.Fields))
		for _, field := range provider.Fields() {
			value, ok := step.Fields[string(field)]
			if !ok {
				continue
			}
			h.ctrl.OnFieldChange(field, value)
			event.Args[string(field)] = value
		}

	case ActionSubmit:
		if err := h.ctrl.OnSubmit(ctx); err != nil {
			var verr *provider.ValidationError
			if errors.As(err, &verr) {
				event.Outcome = OutcomeRejected
			} else {
				event.Outcome = OutcomeFailed
			}
		}

	case ActionEdit:
		event.Args = map[string]string{"id": strconv.FormatInt(step.ID, 10)}
		r, ok := h.store.Get(step.ID)
		if !ok {
			event.Outcome = OutcomeNotFound
			break
		}
		h.ctrl.OnEditRequest(r)

	case ActionDelete:
		event.Args = map[string]string{"id": strconv.FormatInt(step.ID, 10)}
		h.ctrl.OnDeleteRequest(ctx, step.ID)

	case ActionReset:
		h.ctrl.Reset()

	default:
		return TraceEvent{}, fmt.Errorf("unknown action %q", step.Action)
	}

	event.Notice = h.notices.take()
	event.Mode = h.ctrl.Mode().String()
	event.Stored = storedIDs(h.store.Snapshot())
	return event, nil
}

func storedIDs(records []provider.Record) []int64 {
	ids := make([]int64, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

func checkExpect(result *Result, i int, expect *Expect, event TraceEvent) {
	if expect == nil {
		return
	}
	if expect.Outcome != "" && expect.Outcome != event.Outcome {
		result.AddError(fmt.Sprintf("step %d (%s): expected outcome %q, got %q", i, event.Action, expect.Outcome, event.Outcome))
	}
	if expect.Message != "" {
		got := ""
		if event.Notice != nil {
			got = event.Notice.Message
		}
		if got != expect.Message {
			result.AddError(fmt.Sprintf("step %d (%s): expected message %q, got %q", i, event.Action, expect.Message, got))
		}
	}
	if expect.Mode != "" && expect.Mode != event.Mode {
		result.AddError(fmt.Sprintf("step %d (%s): expected mode %q, got %q", i, event.Action, expect.Mode, event.Mode))
	}
}
