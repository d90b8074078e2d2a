package textract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/itune8/autodoc-classifier/internal/infrastructure/resilience"
)

// Runner lets tests stub the external command.
type Runner interface {
	Run(ctx context.Context, name string, stdin []byte, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, stdin []byte, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	if err != nil {
		slog.Error("exec_failed",
			"cmd", name,
			"args", strings.Join(args, " "),
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
			"stderr", truncate(errb.String(), 8<<10),
		)
	} else {
		slog.Debug("exec_ok",
			"cmd", name,
			"args", strings.Join(args, " "),
			"duration_ms", time.Since(start).Milliseconds(),
			"stdout_bytes", out.Len(),
		)
	}

	return out.Bytes(), errb.Bytes(), err
}

// OCR shells out to the tesseract binary, piping the image through
// stdin/stdout. A missing binary is a degraded mode, not an error: documents
// still flow through the pipeline with empty text.
type OCR struct {
	binary   string
	timeout  time.Duration
	enabled  bool
	runner   Runner
	executor *resilience.Executor
}

func NewOCR(binary string, timeout time.Duration, enabled bool, executor *resilience.Executor) *OCR {
	if binary == "" {
		binary = "tesseract"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OCR{
		binary:   binary,
		timeout:  timeout,
		enabled:  enabled,
		runner:   execRunner{},
		executor: executor,
	}
}

// WithRunner replaces the command runner; test hook.
func (o *OCR) WithRunner(r Runner) *OCR {
	o.runner = r
	return o
}

func (o *OCR) Enabled() bool {
	return o != nil && o.enabled
}

func (o *OCR) Run(ctx context.Context, image []byte) (string, error) {
	if !o.Enabled() {
		return "", nil
	}
	if _, err := exec.LookPath(o.binary); err != nil {
		slog.Warn("tesseract_unavailable", "binary", o.binary, "error", err)
		return "", nil
	}

	runCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var text string
	call := func(c context.Context) error {
		stdout, stderr, err := o.runner.Run(c, o.binary, image, "stdin", "stdout")
		if err != nil {
			return fmt.Errorf("tesseract: %w (stderr: %s)", err, truncate(string(stderr), 512))
		}
		text = string(stdout)
		return nil
	}

	if o.executor != nil {
		if err := o.executor.Execute(runCtx, "ocr.tesseract", call, classifyOCRError); err != nil {
			return "", err
		}
		return text, nil
	}
	if err := call(runCtx); err != nil {
		return "", err
	}
	return text, nil
}

func classifyOCRError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	// A non-zero exit is deterministic for a given input; only failures to
	// run the process at all are worth retrying.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
	}
	return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
