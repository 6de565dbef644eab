// Package build runs staged, idempotent pipelines.
//
// A pipeline is an ordered sequence of stages. Each stage declares the
// artifacts its work leaves on disk; a stage is skipped when all of them
// already exist, so rerunning a finished build touches nothing, and a broken
// run resumes where it stopped instead of starting over. The first failing
// stage aborts the pipeline.
//
// Stages describe what to run through plain functions, so the package knows
// nothing about git, vcpkg, or CMake. The recipe package assembles the
// concrete Luanti pipeline.
//
// Example usage:
//
//	result, err := build.Run(ctx, stages)
//	if err != nil {
//	    slog.Error("build aborted", "stage", result.FailedStage())
//	    return err
//	}
package build
