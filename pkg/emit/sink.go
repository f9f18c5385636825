package emit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// Outcome describes what a Sink did with a file entry.
type Outcome string

const (
	OutcomeCreated     Outcome = "created"
	OutcomeOverwritten Outcome = "overwritten"
	OutcomeSkipped     Outcome = "skipped"
	OutcomePlanned     Outcome = "planned"
)

// ContentRenderer renders a catalog template into source bytes.
type ContentRenderer interface {
	Render(templateID string, data any) ([]byte, error)
}

// Sink receives the directories and files of a plan.
type Sink interface {
	EnsureDir(ctx context.Context, path string, shared bool) error
	Render(ctx context.Context, templateID, outputPath string, data any, allowOverwrite bool) (Outcome, error)
}

// SinkOption configures the built-in sinks.
type SinkOption func(*sinkConfig)

type sinkConfig struct {
	logger   *log.Logger
	dirMode  fs.FileMode
	fileMode fs.FileMode
}

// WithLogger routes sink diagnostics to logger.
func WithLogger(logger *log.Logger) SinkOption {
	return func(cfg *sinkConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithFileMode overrides the permissions of created files.
func WithFileMode(mode fs.FileMode) SinkOption {
	return func(cfg *sinkConfig) {
		if mode != 0 {
			cfg.fileMode = mode
		}
	}
}

func newSinkConfig(options []SinkOption) sinkConfig {
	cfg := sinkConfig{
		logger:   log.New(io.Discard),
		dirMode:  0o755,
		fileMode: 0o644,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// FileSink renders entries and writes them to disk. Entries that must not
// overwrite are created with O_EXCL, so concurrent generations racing on a
// shared file write it exactly once.
type FileSink struct {
	renderer ContentRenderer
	cfg      sinkConfig
}

var _ Sink = (*FileSink)(nil)

// NewFileSink constructs a FileSink rendering through renderer.
func NewFileSink(renderer ContentRenderer, options ...SinkOption) (*FileSink, error) {
	if renderer == nil {
		return nil, errors.New("emit: renderer is required")
	}
	return &FileSink{renderer: renderer, cfg: newSinkConfig(options)}, nil
}

// EnsureDir creates path and its parents. Existing directories are fine.
func (s *FileSink) EnsureDir(ctx context.Context, path string, shared bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(path, s.cfg.dirMode); err != nil {
		return fmt.Errorf("emit: create directory %s: %w", path, err)
	}
	s.cfg.logger.Debug("directory ready", "path", path, "shared", shared)
	return nil
}

// Render renders templateID and writes it to outputPath.
func (s *FileSink) Render(ctx context.Context, templateID, outputPath string, data any, allowOverwrite bool) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if !allowOverwrite {
		if _, err := os.Stat(outputPath); err == nil {
			s.cfg.logger.Debug("skipping existing file", "path", outputPath)
			return OutcomeSkipped, nil
		}
	}

	payload, err := s.renderer.Render(templateID, data)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), s.cfg.dirMode); err != nil {
		return "", fmt.Errorf("emit: create directory for %s: %w", outputPath, err)
	}

	if allowOverwrite {
		_, statErr := os.Stat(outputPath)
		if err := os.WriteFile(outputPath, payload, s.cfg.fileMode); err != nil {
			return "", fmt.Errorf("emit: write %s: %w", outputPath, err)
		}
		if statErr == nil {
			return OutcomeOverwritten, nil
		}
		return OutcomeCreated, nil
	}

	file, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, s.cfg.fileMode)
	if errors.Is(err, fs.ErrExist) {
		s.cfg.logger.Debug("skipping existing file", "path", outputPath)
		return OutcomeSkipped, nil
	}
	if err != nil {
		return "", fmt.Errorf("emit: create %s: %w", outputPath, err)
	}
	if _, err := file.Write(payload); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("emit: write %s: %w", outputPath, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("emit: close %s: %w", outputPath, err)
	}
	return OutcomeCreated, nil
}

// PlannedFile is a file entry recorded by a DryRunSink.
type PlannedFile struct {
	TemplateID string
	OutputPath string
	Overwrite  bool
	Exists     bool
}

// DryRunSink records what would be written without touching the disk.
type DryRunSink struct {
	mu    sync.Mutex
	dirs  []string
	files []PlannedFile
	cfg   sinkConfig
}

var _ Sink = (*DryRunSink)(nil)

// NewDryRunSink constructs an empty DryRunSink.
func NewDryRunSink(options ...SinkOption) *DryRunSink {
	return &DryRunSink{cfg: newSinkConfig(options)}
}

func (s *DryRunSink) EnsureDir(ctx context.Context, path string, _ bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirs = append(s.dirs, path)
	return nil
}

func (s *DryRunSink) Render(ctx context.Context, templateID, outputPath string, _ any, allowOverwrite bool) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	_, statErr := os.Stat(outputPath)
	exists := statErr == nil

	s.mu.Lock()
	s.files = append(s.files, PlannedFile{
		TemplateID: templateID,
		OutputPath: outputPath,
		Overwrite:  allowOverwrite,
		Exists:     exists,
	})
	s.mu.Unlock()

	s.cfg.logger.Debug("planned", "template", templateID, "path", outputPath)
	if exists && !allowOverwrite {
		return OutcomeSkipped, nil
	}
	return OutcomePlanned, nil
}

// Directories returns the recorded directories in call order.
func (s *DryRunSink) Directories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.dirs...)
}

// Files returns the recorded file entries in call order.
func (s *DryRunSink) Files() []PlannedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PlannedFile(nil), s.files...)
}
