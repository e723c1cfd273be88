// Package ocr provides optical character recognition behind a capability
// interface.  The command engine shells out to a tesseract binary; when the
// binary is missing or the capability is disabled, the unavailable engine is
// installed instead and the routing layer rejects image inputs up front.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/casetrace/casetrace/internal/config"
	"github.com/casetrace/casetrace/internal/infrastructure/monitoring/logging"
)

// ErrUnavailable is returned by the null engine.  Callers decide availability
// with Available() before submitting work; seeing this error means the check
// was skipped.
var ErrUnavailable = errors.New("ocr: no recognition engine available")

// Engine extracts text from image bytes.  Implementations must be safe for
// concurrent use.
type Engine interface {
	// Available reports whether the engine can perform recognition.
	Available() bool
	// Recognize returns the text found in the image.  An image with no
	// readable text yields an empty string and a nil error.
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Unavailable is the null engine.
type Unavailable struct{}

// NewUnavailable returns the null engine.
func NewUnavailable() *Unavailable { return &Unavailable{} }

func (*Unavailable) Available() bool { return false }

func (*Unavailable) Recognize(context.Context, []byte) (string, error) {
	return "", ErrUnavailable
}

// CommandEngine runs an external tesseract-compatible binary per request.
// Each call writes the image to a temporary file, invokes the command with
// stdout output, and returns whatever text the process printed.
type CommandEngine struct {
	path    string
	timeout time.Duration
	logger  logging.Logger
}

// NewCommandEngine resolves command on PATH and returns a ready engine.  It
// fails when the binary cannot be found; use NewEngine for the probing
// constructor that degrades to the null engine instead.
func NewCommandEngine(command string, timeout time.Duration, logger logging.Logger) (*CommandEngine, error) {
	path, err := exec.LookPath(command)
	if err != nil {
		return nil, fmt.Errorf("ocr: command %q not found: %w", command, err)
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &CommandEngine{
		path:    path,
		timeout: timeout,
		logger:  logger.Named("ocr"),
	}, nil
}

func (*CommandEngine) Available() bool { return true }

// Recognize shells out to the binary with the image on disk and collects
// stdout.  Process failure and timeout surface as errors; the routing layer
// maps both to a no-readable-text rejection.
func (e *CommandEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	tmp, err := os.CreateTemp("", "casetrace-ocr-*")
	if err != nil {
		return "", fmt.Errorf("ocr: failed to stage image: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return "", fmt.Errorf("ocr: failed to stage image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("ocr: failed to stage image: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.path, tmp.Name(), "stdout")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		e.logger.Warn("recognition command failed",
			logging.Err(err),
			logging.String("stderr", stderr.String()),
		)
		return "", fmt.Errorf("ocr: recognition failed: %w", err)
	}

	return stdout.String(), nil
}

// NewEngine builds the engine the configuration asks for, probing for the
// external binary.  A disabled capability or a missing binary yields the
// null engine rather than an error: the service starts either way and the
// health endpoint reports the degraded capability.
func NewEngine(cfg config.OCRConfig, logger logging.Logger) Engine {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	if !cfg.Enabled {
		logger.Info("ocr capability disabled by configuration")
		return NewUnavailable()
	}

	engine, err := NewCommandEngine(cfg.Command, cfg.Timeout, logger)
	if err != nil {
		logger.Warn("ocr capability unavailable",
			logging.String("command", cfg.Command),
			logging.Err(err),
		)
		return NewUnavailable()
	}

	logger.Info("ocr capability ready", logging.String("command", cfg.Command))
	return engine
}
