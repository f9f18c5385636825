package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the user interrupts a prompt with Ctrl+C.
var ErrAborted = errors.New("prompt: aborted")

// InputConfig describes a single-line text question.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// ConfirmConfig describes a yes/no question.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig describes a multi-select question. Defaults are indices into
// Options.
type SelectConfig struct {
	Message  string
	Options  []string
	Defaults []int
	Help     string
	PageSize int
}

// Driver asks the questions of a Session. Tests swap in a scripted driver.
type Driver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
	Info(ctx context.Context, msg string) error
}

// DriverOption customises the survey driver.
type DriverOption func(*surveyDriver)

// WithStdio points the driver at the given terminal streams instead of the
// process ones.
func WithStdio(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) DriverOption {
	return func(d *surveyDriver) {
		d.stdio = []survey.AskOpt{survey.WithStdio(in, out, errOut)}
		d.out = out
	}
}

type surveyDriver struct {
	stdio []survey.AskOpt
	out   io.Writer
}

var _ Driver = (*surveyDriver)(nil)

// NewSurveyDriver returns a Driver backed by survey.
func NewSurveyDriver(options ...DriverOption) Driver {
	d := &surveyDriver{out: os.Stdout}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

func (d *surveyDriver) ask(ctx context.Context, p survey.Prompt, response any, extra ...survey.AskOpt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := survey.AskOne(p, response, append(extra, d.stdio...)...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	var extra []survey.AskOpt
	if validate := cfg.Validator; validate != nil {
		extra = append(extra, survey.WithValidator(func(ans interface{}) error {
			value, _ := ans.(string)
			return validate(value)
		}))
	}
	var answer string
	err := d.ask(ctx, &survey.Input{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, &answer, extra...)
	return answer, err
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	var answer bool
	err := d.ask(ctx, &survey.Confirm{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, &answer)
	return answer, err
}

func (d *surveyDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	q := &survey.MultiSelect{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help}
	if cfg.PageSize > 0 {
		q.PageSize = cfg.PageSize
	}
	var preselected []string
	for _, idx := range cfg.Defaults {
		if idx >= 0 && idx < len(cfg.Options) {
			preselected = append(preselected, cfg.Options[idx])
		}
	}
	if len(preselected) > 0 {
		q.Default = preselected
	}

	var picked []string
	if err := d.ask(ctx, q, &picked); err != nil {
		return nil, err
	}
	chosen := make(map[string]bool, len(picked))
	for _, label := range picked {
		chosen[label] = true
	}
	var out []int
	for i, label := range cfg.Options {
		if chosen[label] {
			out = append(out, i)
		}
	}
	return out, nil
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}
