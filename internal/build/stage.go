package build

import (
	"context"
	"time"
)

// Stage is one idempotent unit of the pipeline.
//
// A stage declares the artifacts its work leaves on disk. When all of them
// already exist the stage is skipped; when any is absent the stage runs and
// must produce it. Stages with no artifacts run on every invocation.
type Stage struct {
	Name string

	// Artifacts are the paths proving the stage already ran.
	Artifacts []string

	// Requires are artifacts of earlier stages consumed here. They are
	// verified before Run so a reordered or trimmed pipeline fails loudly
	// instead of invoking tools against half-built state.
	Requires []string

	// Class is the sentinel wrapped around any failure of this stage,
	// e.g. [ErrCompile]. Nil leaves the failure unclassified.
	Class error

	Run func(ctx context.Context) error
}

// Status of a stage after the pipeline has considered it.
type Status string

const (
	Skipped   Status = "skipped"
	Succeeded Status = "succeeded"
	Failed    Status = "failed"
)

// Outcome records what the pipeline did with one stage.
type Outcome struct {
	Stage    string
	Status   Status
	Duration time.Duration
	Err      error // Set only when Status is Failed.
}
