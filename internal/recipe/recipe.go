package recipe

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/luantibuild/luantibuild/internal/build"
	"github.com/luantibuild/luantibuild/internal/dist"
	"github.com/luantibuild/luantibuild/internal/manifest"
	"github.com/luantibuild/luantibuild/internal/paths"
	"github.com/luantibuild/luantibuild/internal/toolchain"
)

// Assembles the Luanti build pipeline.
//
// Stages run in declaration order: the vcpkg toolchain and its packages,
// LuaRocks and the bundled rocks, the engine and game checkouts, the compile,
// and finally the distribution assembly.
func Stages(l paths.Layout, m *manifest.Manifest, r toolchain.Runner) []build.Stage {
	b := builder{layout: l, manifest: m, runner: r}
	return []build.Stage{
		b.fetchVcpkg(),
		b.bootstrapVcpkg(),
		b.installPackages(),
		b.fetchLuaRocks(),
		b.installLuaRocks(),
		b.installRocks(),
		b.fetchLuanti(),
		b.compile(),
		b.fetchGame(),
		b.pack(),
	}
}

// Holds the shared inputs of all stage constructors.
type builder struct {
	layout   paths.Layout
	manifest *manifest.Manifest
	runner   toolchain.Runner
}

// Runs commands in order, stopping at the first failure.
func (b builder) runAll(ctx context.Context, cmds ...toolchain.Command) error {
	for _, cmd := range cmds {
		if err := b.runner.Run(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}

// Returns a luarocks invocation.
func (b builder) luarocks(args ...string) toolchain.Command {
	return toolchain.Command{Path: b.layout.LuaRocksExe(), Args: args}
}

// Expands manifest CMake definitions into -D flags.
//
// ${vcpkg} and ${triplet} resolve against the active layout. The vcpkg path
// is slash-normalized; CMake accepts forward slashes on Windows and the
// manifest values are written with them.
func (b builder) definitions() []string {
	expand := strings.NewReplacer(
		"${vcpkg}", filepath.ToSlash(b.layout.VcpkgDir()),
		"${triplet}", b.layout.Arch.Triplet(),
	)

	defs := make([]string, 0, len(b.manifest.CMake.Definitions))
	for _, d := range b.manifest.CMake.Definitions {
		defs = append(defs, "-D"+expand.Replace(d))
	}
	return defs
}

// Paths inside the rocks tree proving each rock is installed.
func (b builder) rockArtifacts() []string {
	artifacts := make([]string, 0, len(b.manifest.LuaRocks.Rocks))
	for _, rock := range b.manifest.LuaRocks.Rocks {
		artifacts = append(artifacts, filepath.Join(b.layout.RockLibTree(), filepath.FromSlash(rock.Probe)))
	}
	return artifacts
}

// Builds the ordered merge plan for the distribution.
//
// Order matters: the compiled binaries land first, the engine's data trees
// and the game follow, and the rocks trees merge into bin last so their DLLs
// win any name collision.
func (b builder) plan() dist.Plan {
	l := b.layout
	p := b.manifest.Packaging

	sources := []dist.Source{{Path: l.ReleaseBinDir(), Dest: "bin"}}
	for _, tree := range p.Trees {
		sources = append(sources, dist.Source{Path: filepath.Join(l.SourceDir(), tree), Dest: tree})
	}
	for _, file := range p.Files {
		sources = append(sources, dist.Source{Path: filepath.Join(l.SourceDir(), file), Dest: file})
	}
	sources = append(sources,
		dist.Source{Path: l.GameDir(), Dest: filepath.Join("games", b.manifest.Game.Name)},
		dist.Source{Path: l.RockLibTree(), Dest: "bin"},
		dist.Source{Path: l.RockShareTree(), Dest: filepath.Join("bin", "lua")},
	)

	return dist.Plan{
		Root:      l.DistDir(),
		Sources:   sources,
		Exclude:   p.Exclude,
		ExtraDirs: p.ExtraDirs,
	}
}
