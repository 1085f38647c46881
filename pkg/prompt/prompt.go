// Package prompt fills a form from terminal input. Each field becomes a
// prompt matched to its capabilities: select-style fields offer their choice
// labels, booleans confirm, everything else reads text. Responses are pushed
// through the field's own Process/Validate cycle, so binding and validation
// behave exactly as they would for an HTTP submission.
package prompt

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfield/pkg/forms"
)

// Option configures the fill session.
type Option func(*filler)

// WithDriver swaps the prompt driver; defaults to the survey-backed one.
func WithDriver(driver Driver) Option {
	return func(f *filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithMaxAttempts bounds the re-prompt loop per field. Zero means unbounded.
func WithMaxAttempts(attempts int) Option {
	return func(f *filler) {
		f.maxAttempts = attempts
	}
}

type filler struct {
	driver      Driver
	maxAttempts int
}

// Fill walks the form's fields in declaration order, prompting for each and
// re-prompting while the bound value fails validation. Container fields are
// filled entry by entry, so a dictionary field must be populated (via
// Process with its bound mapping) before Fill runs.
func Fill(ctx context.Context, form *forms.Form, options ...Option) error {
	if form == nil {
		return fmt.Errorf("prompt: form is nil")
	}
	f := &filler{driver: NewSurveyDriver()}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}

	for _, field := range form.Fields() {
		if group, ok := field.(forms.Group); ok {
			for _, entry := range group.Entries() {
				if err := f.promptField(ctx, form, entry); err != nil {
					return err
				}
			}
			continue
		}
		if err := f.promptField(ctx, form, field); err != nil {
			return err
		}
	}
	return nil
}

func (f *filler) promptField(ctx context.Context, form *forms.Form, field forms.Field) error {
	for attempt := 0; f.maxAttempts == 0 || attempt < f.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, skip, err := f.ask(ctx, field)
		if err != nil {
			return err
		}
		if skip {
			return nil
		}

		if err := field.Process(url.Values{field.Name(): {raw}}, nil); err != nil {
			return fmt.Errorf("prompt: bind %q: %w", field.Name(), err)
		}
		_ = field.Validate(form)

		msgs := field.Errors()
		if len(msgs) == 0 {
			return nil
		}
		notice := fmt.Sprintf("Invalid %s: %s", field.Name(), strings.Join(msgs, "; "))
		if err := f.driver.Info(ctx, notice); err != nil {
			return err
		}
	}
	return fmt.Errorf("prompt: field %q still invalid after %d attempts", field.Name(), f.maxAttempts)
}

// ask runs the driver interaction for one field and returns the raw value to
// bind. skip is true when the field offers no choices to pick from.
func (f *filler) ask(ctx context.Context, field forms.Field) (raw string, skip bool, err error) {
	label := field.Label()
	help := field.Description()

	if provider, ok := field.(forms.ChoiceProvider); ok {
		choices := provider.Choices()
		if len(choices) == 0 {
			return "", true, nil
		}
		options := make([]string, 0, len(choices))
		defaultIndex := 0
		for i, choice := range choices {
			options = append(options, choice.Label)
			if choice.Selected {
				defaultIndex = i
			}
		}
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: defaultIndex,
			Help:         help,
		})
		if err != nil {
			return "", false, err
		}
		if idx < 0 || idx >= len(choices) {
			return "", true, nil
		}
		return choices[idx].Value, false, nil
	}

	switch concrete := field.(type) {
	case *forms.BooleanField:
		resp, err := f.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: concrete.Bool(),
			Help:    help,
		})
		if err != nil {
			return "", false, err
		}
		return strconv.FormatBool(resp), false, nil
	case *forms.TextAreaField:
		resp, err := f.driver.TextArea(ctx, InputConfig{
			Message: label,
			Default: concrete.RawValue(),
			Help:    help,
		})
		return resp, false, err
	}

	cfg := InputConfig{Message: label, Help: help}
	if v, ok := field.(interface{ RawValue() string }); ok {
		cfg.Default = v.RawValue()
	}
	resp, err := f.driver.Input(ctx, cfg)
	return resp, false, err
}
