package build

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/luantibuild/luantibuild/internal/artifact"
)

// Result of one pipeline run.
type Result struct {
	Outcomes []Outcome     // One per considered stage, in declaration order.
	Elapsed  time.Duration // Wall time of the whole run.
}

// Returns the name of the stage that aborted the run, or "".
func (r *Result) FailedStage() string {
	for _, o := range r.Outcomes {
		if o.Status == Failed {
			return o.Stage
		}
	}
	return ""
}

// Returns how many outcomes have the given status.
func (r *Result) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Executes stages in declaration order.
//
// A stage whose artifacts all exist is skipped without invoking anything. A
// failed stage aborts the run: its outcome is the last one recorded, later
// stages are never considered, and the returned error names the stage. The
// result is returned alongside the error so callers can report the partial
// run.
func Run(ctx context.Context, stages []Stage) (*Result, error) {
	start := time.Now()
	result := &Result{Outcomes: make([]Outcome, 0, len(stages))}

	for _, stage := range stages {
		outcome := runStage(ctx, stage)
		result.Outcomes = append(result.Outcomes, outcome)

		if outcome.Status == Failed {
			result.Elapsed = time.Since(start)
			return result, fmt.Errorf("stage %s: %w", stage.Name, outcome.Err)
		}
	}

	result.Elapsed = time.Since(start)
	return result, nil
}

func runStage(ctx context.Context, stage Stage) Outcome {
	start := time.Now()

	if len(stage.Artifacts) > 0 && artifact.AllExist(stage.Artifacts) {
		slog.Info("skipping stage", "stage", stage.Name)
		return Outcome{Stage: stage.Name, Status: Skipped, Duration: time.Since(start)}
	}

	slog.Info("running stage", "stage", stage.Name)

	if err := stage.execute(ctx); err != nil {
		if stage.Class != nil {
			err = fmt.Errorf("%w: %w", stage.Class, err)
		}
		return Outcome{Stage: stage.Name, Status: Failed, Duration: time.Since(start), Err: err}
	}

	outcome := Outcome{Stage: stage.Name, Status: Succeeded, Duration: time.Since(start)}
	slog.Info("stage succeeded", "stage", stage.Name, "elapsed", outcome.Duration)
	return outcome
}

// Verifies requirements, runs the stage, then verifies its own artifacts.
//
// The trailing verification catches tools that exit zero without producing
// their output.
func (s Stage) execute(ctx context.Context) error {
	for _, req := range s.Requires {
		if err := artifact.Verify(req); err != nil {
			return err
		}
	}

	if err := s.Run(ctx); err != nil {
		return err
	}

	for _, a := range s.Artifacts {
		if err := artifact.Verify(a); err != nil {
			return err
		}
	}
	return nil
}
