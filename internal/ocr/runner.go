package ocr

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"time"
)

// Runner lets us stub external commands in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// execRunner shells out through os/exec, timing each invocation and logging
// through the adapter's logger rather than the global default.
type execRunner struct {
	logger *slog.Logger
}

func newExecRunner(logger *slog.Logger) execRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return execRunner{logger: logger}
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var out, errb bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &errb

	start := time.Now()
	err := cmd.Run()

	if err != nil {
		r.logger.Error("exec failed",
			"cmd", name,
			"duration_ms", time.Since(start).Milliseconds(),
			"stderr_bytes", errb.Len(),
			"stderr", truncate(errb.String(), 8<<10),
			"error", err,
		)
		return out.Bytes(), errb.Bytes(), err
	}

	r.logger.Debug("exec ok",
		"cmd", name,
		"duration_ms", time.Since(start).Milliseconds(),
		"stdout_bytes", out.Len(),
		"stderr_bytes", errb.Len(),
	)
	return out.Bytes(), errb.Bytes(), nil
}

// truncate caps log and error payloads copied from collaborator output.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
