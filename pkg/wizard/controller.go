package wizard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formwizard/pkg/formdata"
	"github.com/goliatone/go-formwizard/pkg/step"
)

// SubmitFunc persists the final record. It is an external collaborator; the
// controller only guarantees it is called with a ready wizard.
type SubmitFunc func(ctx context.Context, data formdata.FormData) error

type slot struct {
	schema     *step.Schema
	state      State
	result     *step.Result
	generation uint64
}

// Controller owns the data and per-step results of one wizard session.
type Controller struct {
	mu        sync.Mutex
	sessionID string
	order     []int
	slots     map[int]*slot
	data      formdata.FormData
	seed      map[string]any
	notifier  *Notifier
	logger    zerolog.Logger

	// readySeq numbers readiness changes under mu; publishMu orders their
	// delivery so a stale change is never published after a newer one.
	readySeq     uint64
	publishMu    sync.Mutex
	publishedSeq uint64
}

// New builds a controller for the supplied step schemas. At least one schema
// is required and step indexes must be unique.
func New(schemas []*step.Schema, opts ...Option) (*Controller, error) {
	c := &Controller{
		slots:  make(map[int]*slot, len(schemas)),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if len(schemas) == 0 {
		return nil, &step.ConfigurationError{Reason: "wizard requires at least one step"}
	}
	for _, schema := range schemas {
		if schema == nil {
			return nil, &step.ConfigurationError{Reason: "nil step schema"}
		}
		if _, exists := c.slots[schema.Index()]; exists {
			return nil, &step.ConfigurationError{Step: schema.Index(), Reason: "duplicate step index"}
		}
		c.slots[schema.Index()] = &slot{schema: schema, state: StateUntouched}
		c.order = append(c.order, schema.Index())
	}
	sort.Ints(c.order)

	data, err := formdata.New(c.seed)
	if err != nil {
		return nil, fmt.Errorf("wizard: seed: %w", err)
	}
	c.data = data
	c.seed = nil

	if c.sessionID == "" {
		c.sessionID = uuid.NewString()
	}
	if c.notifier == nil {
		c.notifier = NewNotifier()
	}
	c.logger = c.logger.With().Str("session", c.sessionID).Logger()
	return c, nil
}

// SessionID identifies this wizard session in logs.
func (c *Controller) SessionID() string { return c.sessionID }

// Notifier exposes the observer registry.
func (c *Controller) Notifier() *Notifier { return c.notifier }

// Steps lists the declared step indexes in ascending order.
func (c *Controller) Steps() []int {
	return append([]int(nil), c.order...)
}

// Schema returns the schema registered for index.
func (c *Controller) Schema(index int) (*step.Schema, bool) {
	s, ok := c.slots[index]
	if !ok {
		return nil, false
	}
	return s.schema, true
}

// StepsForField lists the steps that declare field.
func (c *Controller) StepsForField(field string) []int {
	var out []int
	for _, index := range c.order {
		if c.slots[index].schema.Declares(field) {
			out = append(out, index)
		}
	}
	return out
}

// Data returns the current FormData snapshot.
func (c *Controller) Data() formdata.FormData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

// UpdateField merges value into a new FormData. No validation runs here.
func (c *Controller) UpdateField(field string, value any) error {
	c.mu.Lock()
	previous := c.data
	next, err := previous.With(field, value)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("wizard: update %q: %w", field, err)
	}
	c.data = next
	c.mu.Unlock()

	c.logger.Debug().Str("field", field).Msg("field updated")
	c.notifier.publishData(DataChange{
		Field:    field,
		Fields:   formdata.Changed(previous, next),
		Previous: previous,
		Current:  next,
	})
	return nil
}

// ValidateStep validates the step at index against the current data and
// commits the result unless a newer validation of the same step started in
// the meantime, in which case the result is returned with ErrSuperseded. If
// ctx ends first the state falls back to the last committed result and
// ctx.Err() is returned.
func (c *Controller) ValidateStep(ctx context.Context, index int) (step.Result, error) {
	c.mu.Lock()
	s, ok := c.slots[index]
	if !ok {
		c.mu.Unlock()
		return step.Result{}, fmt.Errorf("%w: %d", ErrUnknownStep, index)
	}
	s.generation++
	generation := s.generation
	s.state = StateValidating
	data := c.data.Subset(s.schema.FieldNames()...)
	c.mu.Unlock()

	c.notifier.publishStep(StepEvent{Index: index, State: StateValidating})

	result, err := s.schema.Validate(ctx, data)

	c.mu.Lock()
	if s.generation != generation {
		c.mu.Unlock()
		c.logger.Debug().Int("step", index).Uint64("generation", generation).Msg("discarding superseded validation")
		if err != nil {
			return step.Result{}, errors.Join(ErrSuperseded, err)
		}
		return result, ErrSuperseded
	}
	if err != nil {
		s.state = stateFor(s.result)
		restored := s.state
		committed := s.result
		c.mu.Unlock()
		c.logger.Debug().Err(err).Int("step", index).Msg("validation interrupted")
		c.notifier.publishStep(StepEvent{Index: index, State: restored, Result: committed})
		return step.Result{}, err
	}

	wasReady := c.readyLocked()
	committed := result
	s.result = &committed
	s.state = stateFor(s.result)
	ready := c.readyLocked()
	state := s.state
	var seq uint64
	if ready != wasReady {
		c.readySeq++
		seq = c.readySeq
	}
	c.mu.Unlock()

	c.logger.Debug().Int("step", index).Bool("valid", result.Valid).Int("errors", len(result.Errors)).Msg("step validated")
	c.notifier.publishStep(StepEvent{Index: index, State: state, Result: &committed})
	if seq != 0 {
		c.publishReadiness(seq, ready)
	}
	return result, nil
}

// ValidateAll validates every step in order and returns the results. It stops
// at the first error other than ErrSuperseded.
func (c *Controller) ValidateAll(ctx context.Context) ([]step.Result, error) {
	out := make([]step.Result, 0, len(c.order))
	for _, index := range c.order {
		result, err := c.ValidateStep(ctx, index)
		if err != nil && !errors.Is(err, ErrSuperseded) {
			return out, err
		}
		out = append(out, result)
	}
	return out, nil
}

// IsSubmitReady reports whether every step has a committed, valid result. It
// is recomputed on every call.
func (c *Controller) IsSubmitReady() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readyLocked()
}

// Result returns the committed result of a step.
func (c *Controller) Result(index int) (step.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.slots[index]
	if !ok || s.result == nil {
		return step.Result{}, false
	}
	return *s.result, true
}

// Results returns the committed results in step order.
func (c *Controller) Results() []step.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []step.Result
	for _, index := range c.order {
		if r := c.slots[index].result; r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// State returns the lifecycle state of a step; unknown steps report
// StateUntouched.
func (c *Controller) State(index int) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.slots[index]; ok {
		return s.state
	}
	return StateUntouched
}

// Reset clears the data and every result. Validations still in flight are
// superseded and will not commit.
func (c *Controller) Reset() {
	c.mu.Lock()
	previous := c.data
	wasReady := c.readyLocked()
	c.data = formdata.FormData{}
	for _, s := range c.slots {
		s.generation++
		s.result = nil
		s.state = StateUntouched
	}
	var seq uint64
	if wasReady {
		c.readySeq++
		seq = c.readySeq
	}
	c.mu.Unlock()

	c.logger.Debug().Msg("wizard reset")
	c.notifier.publishData(DataChange{
		Fields:   formdata.Changed(previous, formdata.FormData{}),
		Previous: previous,
		Current:  formdata.FormData{},
	})
	for _, index := range c.order {
		c.notifier.publishStep(StepEvent{Index: index, State: StateUntouched})
	}
	if seq != 0 {
		c.publishReadiness(seq, false)
	}
}

// Submit hands the current data to fn when the wizard is ready.
func (c *Controller) Submit(ctx context.Context, fn SubmitFunc) error {
	if fn == nil {
		return fmt.Errorf("wizard: submit function is nil")
	}
	c.mu.Lock()
	ready := c.readyLocked()
	data := c.data
	c.mu.Unlock()
	if !ready {
		return ErrNotReady
	}
	if err := fn(ctx, data); err != nil {
		return fmt.Errorf("wizard: submit: %w", err)
	}
	c.logger.Info().Int("fields", data.Len()).Msg("wizard submitted")
	return nil
}

// publishReadiness delivers the readiness change numbered seq unless a newer
// change was already delivered, so the last flag an observer sees always
// matches IsSubmitReady once validations settle. Readiness observers run
// under publishMu and must not call ValidateStep or Reset synchronously.
func (c *Controller) publishReadiness(seq uint64, ready bool) {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()
	if seq <= c.publishedSeq {
		c.logger.Debug().Uint64("seq", seq).Bool("ready", ready).Msg("dropping stale readiness change")
		return
	}
	c.publishedSeq = seq
	c.notifier.publishReadiness(ready)
}

func (c *Controller) readyLocked() bool {
	for _, index := range c.order {
		r := c.slots[index].result
		if r == nil || !r.Valid {
			return false
		}
	}
	return true
}

func stateFor(result *step.Result) State {
	switch {
	case result == nil:
		return StateUntouched
	case result.Valid:
		return StateValid
	default:
		return StateInvalid
	}
}
