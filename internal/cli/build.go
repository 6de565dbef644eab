package cli

import (
	"context"
	"log/slog"

	"github.com/luantibuild/luantibuild/internal/build"
	"github.com/luantibuild/luantibuild/internal/manifest"
	"github.com/luantibuild/luantibuild/internal/paths"
	"github.com/luantibuild/luantibuild/internal/recipe"
	"github.com/luantibuild/luantibuild/internal/toolchain"
)

// Represents the 'luantibuild build' command.
type BuildCmd struct {
	Arch         paths.Arch `help:"Target architecture." enum:"x86,x64" default:"x86"`
	ForceRebuild bool       `help:"Remove this architecture's build and dist trees first, so every stage runs again."`
	Root         string     `help:"Project root holding the build and dist trees." default:"." type:"path"`
	Manifest     string     `short:"m" help:"Manifest file overriding the built-in pins." placeholder:"PATH" type:"path"`
}

// Executes the build command.
//
// The MSVC environment is verified before anything touches the filesystem,
// and a forced rebuild resets the architecture's trees before the layout is
// re-created. The pipeline then runs every stage whose artifacts are missing.
func (c *BuildCmd) Run(ctx context.Context) error {
	if err := toolchain.CheckEnv(); err != nil {
		return err
	}

	m, err := manifest.Load(c.Manifest)
	if err != nil {
		return err
	}

	if c.ForceRebuild {
		slog.Info("forcing rebuild", "arch", c.Arch)
		if err := paths.Reset(c.Root, c.Arch); err != nil {
			return err
		}
	}

	layout, err := paths.Resolve(c.Root, c.Arch)
	if err != nil {
		return err
	}

	slog.Info("building", "arch", c.Arch, "root", c.Root)

	result, err := build.Run(ctx, recipe.Stages(layout, m, toolchain.ExecRunner{}))
	if err != nil {
		slog.Error("build aborted", "stage", result.FailedStage(), "elapsed", result.Elapsed)
		return err
	}

	slog.Info("build finished",
		"elapsed", result.Elapsed,
		"succeeded", result.Count(build.Succeeded),
		"skipped", result.Count(build.Skipped),
		"dist", layout.DistDir(),
	)
	return nil
}
