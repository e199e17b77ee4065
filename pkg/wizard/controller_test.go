package wizard_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/formdata"
	"github.com/goliatone/go-formwizard/pkg/step"
	"github.com/goliatone/go-formwizard/pkg/validation"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func organizationSchemas(t *testing.T, extra ...step.Option) []*step.Schema {
	t.Helper()
	basics, err := step.NewSchema(1, []step.FieldSpec{
		{Name: "name", Label: "Name", Required: true, Validators: []validation.FieldValidator{validation.MaxLength(80)}},
	})
	if err != nil {
		t.Fatalf("schema 1: %v", err)
	}
	address, err := step.NewSchema(2, []step.FieldSpec{
		{Name: "city", Validators: []validation.FieldValidator{validation.MaxLength(40)}},
		{Name: "website", Validators: []validation.FieldValidator{validation.URL()}},
	}, extra...)
	if err != nil {
		t.Fatalf("schema 2: %v", err)
	}
	return []*step.Schema{basics, address}
}

func newController(t *testing.T, schemas []*step.Schema, opts ...wizard.Option) *wizard.Controller {
	t.Helper()
	c, err := wizard.New(schemas, opts...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return c
}

func TestNew_ConfigurationErrors(t *testing.T) {
	if _, err := wizard.New(nil); !step.IsConfigurationError(err) {
		t.Fatalf("expected configuration error for empty wizard, got %v", err)
	}
	schemas := organizationSchemas(t)
	if _, err := wizard.New([]*step.Schema{schemas[0], schemas[0]}); !step.IsConfigurationError(err) {
		t.Fatalf("expected configuration error for duplicate index, got %v", err)
	}
	if _, err := wizard.New(schemas, wizard.WithSeed(map[string]any{"tags": []string{"x"}})); !errors.Is(err, formdata.ErrUnsupportedValue) {
		t.Fatalf("expected seed error, got %v", err)
	}
}

func TestUpdateField_ReplacesDataWithoutMutation(t *testing.T) {
	c := newController(t, organizationSchemas(t), wizard.WithSeed(map[string]any{"name": "Acme"}))

	before := c.Data()
	if err := c.UpdateField("city", "Lisbon"); err != nil {
		t.Fatalf("update: %v", err)
	}
	after := c.Data()

	if _, ok := before.Get("city"); ok {
		t.Fatalf("previous snapshot must not change")
	}
	if got := after.String("city"); got != "Lisbon" {
		t.Fatalf("expected city in new snapshot, got %q", got)
	}
	if got := after.String("name"); got != "Acme" {
		t.Fatalf("expected seeded name, got %q", got)
	}
	if err := c.UpdateField("city", map[string]string{}); !errors.Is(err, formdata.ErrUnsupportedValue) {
		t.Fatalf("expected unsupported value error, got %v", err)
	}
}

func TestIsSubmitReady_RequiresEveryStep(t *testing.T) {
	c := newController(t, organizationSchemas(t))
	ctx := context.Background()

	if c.IsSubmitReady() {
		t.Fatalf("fresh wizard must not be ready")
	}

	// Step 2 only has optional fields and is valid, but step 1 was never validated.
	result, err := c.ValidateStep(ctx, 2)
	if err != nil {
		t.Fatalf("validate step 2: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected vacuously valid step, got %#v", result)
	}
	if c.IsSubmitReady() {
		t.Fatalf("unvalidated step 1 must block readiness")
	}

	if _, err := c.ValidateStep(ctx, 1); err != nil {
		t.Fatalf("validate step 1: %v", err)
	}
	if c.IsSubmitReady() {
		t.Fatalf("invalid step 1 must block readiness")
	}
	if got := c.State(1); got != wizard.StateInvalid {
		t.Fatalf("expected invalid state, got %s", got)
	}

	if err := c.UpdateField("name", "Acme"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := c.ValidateStep(ctx, 1); err != nil {
		t.Fatalf("validate step 1: %v", err)
	}
	if !c.IsSubmitReady() {
		t.Fatalf("expected ready wizard")
	}

	if err := c.UpdateField("website", "not-a-url"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := c.ValidateStep(ctx, 2); err != nil {
		t.Fatalf("validate step 2: %v", err)
	}
	if c.IsSubmitReady() {
		t.Fatalf("re-validated invalid step must clear readiness")
	}
}

func TestValidateStep_Idempotent(t *testing.T) {
	c := newController(t, organizationSchemas(t), wizard.WithSeed(map[string]any{"website": "nope"}))
	first, err := c.ValidateStep(context.Background(), 2)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	second, err := c.ValidateStep(context.Background(), 2)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("expected identical results (-first +second):\n%s", diff)
	}
	stored, ok := c.Result(2)
	if !ok {
		t.Fatalf("expected committed result")
	}
	if diff := cmp.Diff(second, stored); diff != "" {
		t.Fatalf("stored result mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateStep_UnknownStep(t *testing.T) {
	c := newController(t, organizationSchemas(t))
	if _, err := c.ValidateStep(context.Background(), 9); !errors.Is(err, wizard.ErrUnknownStep) {
		t.Fatalf("expected ErrUnknownStep, got %v", err)
	}
}

// slowFirstCollaborator blocks the first call until release is closed and
// reports a stale issue from it; later calls return immediately and clean.
type slowFirstCollaborator struct {
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (s *slowFirstCollaborator) ValidateRecord(ctx context.Context, _ map[string]any) ([]validation.Issue, error) {
	if s.calls.Add(1) == 1 {
		close(s.entered)
		select {
		case <-s.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return []validation.Issue{{Path: "/city", Message: "stale result"}}, nil
	}
	return nil, nil
}

func TestValidateStep_LatestCallWins(t *testing.T) {
	collaborator := &slowFirstCollaborator{entered: make(chan struct{}), release: make(chan struct{})}
	c := newController(t, organizationSchemas(t, step.WithCollaborator(collaborator)))
	ctx := context.Background()

	type outcome struct {
		result step.Result
		err    error
	}
	slow := make(chan outcome, 1)
	go func() {
		result, err := c.ValidateStep(ctx, 2)
		slow <- outcome{result, err}
	}()

	select {
	case <-collaborator.entered:
	case <-time.After(2 * time.Second):
		t.Fatalf("slow validation never started")
	}

	fast, err := c.ValidateStep(ctx, 2)
	if err != nil {
		t.Fatalf("fast validation: %v", err)
	}
	if !fast.Valid {
		t.Fatalf("expected fast validation to be valid, got %#v", fast)
	}

	close(collaborator.release)
	var first outcome
	select {
	case first = <-slow:
	case <-time.After(2 * time.Second):
		t.Fatalf("slow validation never returned")
	}
	if !errors.Is(first.err, wizard.ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", first.err)
	}
	if first.result.Valid {
		t.Fatalf("expected the stale result to be invalid")
	}

	committed, ok := c.Result(2)
	if !ok {
		t.Fatalf("expected committed result")
	}
	if diff := cmp.Diff(fast, committed); diff != "" {
		t.Fatalf("committed result must come from the latest call (-want +got):\n%s", diff)
	}
	if got := c.State(2); got != wizard.StateValid {
		t.Fatalf("expected valid state, got %s", got)
	}
}

func TestReset_SupersedesInFlightValidation(t *testing.T) {
	collaborator := &slowFirstCollaborator{entered: make(chan struct{}), release: make(chan struct{})}
	c := newController(t, organizationSchemas(t, step.WithCollaborator(collaborator)), wizard.WithSeed(map[string]any{"name": "Acme"}))

	done := make(chan error, 1)
	go func() {
		_, err := c.ValidateStep(context.Background(), 2)
		done <- err
	}()
	<-collaborator.entered

	c.Reset()
	close(collaborator.release)
	if err := <-done; !errors.Is(err, wizard.ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded after reset, got %v", err)
	}
	if _, ok := c.Result(2); ok {
		t.Fatalf("reset must leave no results")
	}
	if c.Data().Len() != 0 {
		t.Fatalf("reset must clear data")
	}
	if got := c.State(2); got != wizard.StateUntouched {
		t.Fatalf("expected untouched state, got %s", got)
	}
}

func TestValidateStep_ContextCancelledKeepsPreviousResult(t *testing.T) {
	var block atomic.Bool
	collaborator := step.SchemaValidatorFunc(func(ctx context.Context, _ map[string]any) ([]validation.Issue, error) {
		if block.Load() {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return nil, nil
	})
	c := newController(t, organizationSchemas(t, step.WithCollaborator(collaborator)))

	if _, err := c.ValidateStep(context.Background(), 2); err != nil {
		t.Fatalf("validate: %v", err)
	}

	block.Store(true)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := c.ValidateStep(ctx, 2); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if got := c.State(2); got != wizard.StateValid {
		t.Fatalf("expected state to fall back to the committed result, got %s", got)
	}
	if r, ok := c.Result(2); !ok || !r.Valid {
		t.Fatalf("expected previous valid result to survive, got %#v", r)
	}
}

func TestValidateAllAndSubmit(t *testing.T) {
	c := newController(t, organizationSchemas(t))
	ctx := context.Background()

	var submitted formdata.FormData
	submit := func(_ context.Context, data formdata.FormData) error {
		submitted = data
		return nil
	}
	if err := c.Submit(ctx, submit); !errors.Is(err, wizard.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}

	if err := c.UpdateField("name", "Initech"); err != nil {
		t.Fatalf("update: %v", err)
	}
	results, err := c.ValidateAll(ctx)
	if err != nil {
		t.Fatalf("validate all: %v", err)
	}
	if len(results) != 2 || !results[0].Valid || !results[1].Valid {
		t.Fatalf("unexpected results %#v", results)
	}
	if diff := cmp.Diff(results, c.Results()); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}

	if err := c.Submit(ctx, submit); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := submitted.String("name"); got != "Initech" {
		t.Fatalf("expected submitted name, got %q", got)
	}

	failing := func(context.Context, formdata.FormData) error { return errors.New("backend down") }
	if err := c.Submit(ctx, failing); err == nil {
		t.Fatalf("expected submit error")
	}
}

func TestStepsForField(t *testing.T) {
	c := newController(t, organizationSchemas(t))
	if diff := cmp.Diff([]int{2}, c.StepsForField("website")); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
	if got := c.StepsForField("unknown"); got != nil {
		t.Fatalf("expected no steps, got %v", got)
	}
	if diff := cmp.Diff([]int{1, 2}, c.Steps()); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
	if c.SessionID() == "" {
		t.Fatalf("expected generated session id")
	}
}
