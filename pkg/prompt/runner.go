package prompt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formwizard/pkg/formdata"
	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/step"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const (
	defaultMaxAttempts = 3
	noneOption         = "(none)"
)

// Runner walks a wizard definition in the terminal.
type Runner struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	theme             Theme
	maxAttempts       int
	submitTransformer SubmitTransformer
	logger            zerolog.Logger
}

// New constructs a runner with defaults (survey driver, JSON output).
func New(options ...Option) *Runner {
	r := &Runner{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme(),
		maxAttempts:  defaultMaxAttempts,
		logger:       zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// ContentType reports the serialization format used by Run.
func (r *Runner) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Run prompts every step of wiz in order, validating each through ctrl before
// moving on, then submits the record and returns it serialized.
func (r *Runner) Run(ctx context.Context, wiz model.Wizard, ctrl *wizard.Controller) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("prompt: context is required")
	}
	if ctrl == nil {
		return nil, errors.New("prompt: controller is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if wiz.Title != "" {
		if err := r.driver.Info(ctx, r.theme.Title.Render(wiz.Title)); err != nil {
			return nil, err
		}
	}

	for pos, st := range wiz.Steps {
		title := st.Title
		if title == "" {
			title = st.Name
		}
		header := fmt.Sprintf("Step %d/%d: %s", pos+1, len(wiz.Steps), title)
		if err := r.driver.Info(ctx, r.theme.Info.Render(header)); err != nil {
			return nil, err
		}
		if err := r.runStep(ctx, st, ctrl); err != nil {
			return nil, err
		}
	}

	var payload []byte
	err := ctrl.Submit(ctx, func(_ context.Context, data formdata.FormData) error {
		values := presentValues(data)
		if r.submitTransformer != nil {
			var err error
			values, err = r.submitTransformer(values)
			if err != nil {
				return fmt.Errorf("submit transformer: %w", err)
			}
		}
		var err error
		payload, err = r.serialize(values)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}
	return payload, nil
}

func (r *Runner) runStep(ctx context.Context, st model.Step, ctrl *wizard.Controller) error {
	pending := st.Fields
	for attempt := 1; ; attempt++ {
		for _, field := range pending {
			if err := r.askField(ctx, field, ctrl); err != nil {
				return err
			}
		}

		res, err := ctrl.ValidateStep(ctx, st.Index)
		if err != nil {
			return fmt.Errorf("prompt: validate step %d: %w", st.Index, err)
		}
		if res.Valid {
			r.logger.Debug().Int("step", st.Index).Int("attempt", attempt).Msg("step valid")
			return nil
		}

		r.logger.Debug().Int("step", st.Index).Strs("fields", res.Fields()).Msg("step invalid")
		for _, field := range res.Fields() {
			if err := r.driver.Info(ctx, r.theme.Error.Render(res.Error(field))); err != nil {
				return err
			}
		}
		if attempt >= r.maxAttempts {
			return fmt.Errorf("%w: step %d", ErrTooManyAttempts, st.Index)
		}
		pending = failingFields(st, res)
	}
}

// failingFields returns the step fields named in res, or every field when the
// only errors are step-level.
func failingFields(st model.Step, res step.Result) []model.Field {
	var out []model.Field
	for _, field := range st.Fields {
		if res.Error(field.Name) != "" {
			out = append(out, field)
		}
	}
	if len(out) == 0 {
		return st.Fields
	}
	return out
}

func (r *Runner) askField(ctx context.Context, field model.Field, ctrl *wizard.Controller) error {
	current, ok := ctrl.Data().Get(field.Name)
	if !ok {
		current = field.Default
	}
	label := field.DisplayLabel()

	var value any
	switch {
	case field.Type == model.FieldTypeBoolean || field.Type == model.FieldTypeCheckbox:
		def, _ := current.(bool)
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: def, Help: field.Description})
		if err != nil {
			return err
		}
		value = answer
	case len(field.Options) > 0:
		options, values := selectOptions(field)
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: indexOf(values, stringValue(current)),
			Help:         field.Description,
		})
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(values) && values[idx] != "" {
			value = values[idx]
		}
	case field.Type == model.FieldTypeText:
		answer, err := r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: stringValue(current), Help: field.Description})
		if err != nil {
			return err
		}
		value = coerce(field, answer)
	default:
		cfg := InputConfig{Message: label, Default: stringValue(current), Help: inputHelp(field)}
		var (
			answer string
			err    error
		)
		if strings.EqualFold(field.Metadata["cli.secret"], "true") {
			answer, err = r.driver.Password(ctx, cfg)
		} else {
			answer, err = r.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}
		value = coerce(field, answer)
	}

	if err := ctrl.UpdateField(field.Name, value); err != nil {
		return fmt.Errorf("prompt: field %q: %w", field.Name, err)
	}
	return nil
}

func selectOptions(field model.Field) (labels, values []string) {
	if !field.Required {
		labels = append(labels, noneOption)
		values = append(values, "")
	}
	for _, option := range field.Options {
		label := option.Label
		if label == "" {
			label = option.Value
		}
		labels = append(labels, label)
		values = append(values, option.Value)
	}
	return labels, values
}

func inputHelp(field model.Field) string {
	if field.Description != "" {
		return field.Description
	}
	return field.Placeholder
}

// coerce converts a raw answer into the value stored for field. Answers are
// trimmed and blank ones clear the field; numeric answers that do not parse
// are kept as text so the step validators can report them.
func coerce(field model.Field, raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	switch field.Type {
	case model.FieldTypeInteger:
		if v, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return v
		}
	case model.FieldTypeNumber:
		if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return v
		}
	}
	return trimmed
}

func stringValue(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// presentValues drops blank fields from the submitted record.
func presentValues(data formdata.FormData) map[string]any {
	values := make(map[string]any, data.Len())
	for _, key := range data.Keys() {
		if !data.Has(key) {
			continue
		}
		value, _ := data.Get(key)
		values[key] = value
	}
	return values
}

func (r *Runner) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for key, value := range values {
			form.Set(key, fmt.Sprint(value))
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		keys := make([]string, 0, len(values))
		for key := range values {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, key := range keys {
			fmt.Fprintf(&b, "%s=%v\n", key, values[key])
		}
		return []byte(b.String()), nil
	default:
		return json.Marshal(values)
	}
}
