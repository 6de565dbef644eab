package recipe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/luantibuild/luantibuild/internal/build"
	"github.com/luantibuild/luantibuild/internal/dist"
	"github.com/luantibuild/luantibuild/internal/paths"
	"github.com/luantibuild/luantibuild/internal/toolchain"
)

func (b builder) fetchVcpkg() build.Stage {
	l := b.layout
	return build.Stage{
		Name:      "fetch-vcpkg",
		Artifacts: []string{l.VcpkgDir()},
		Class:     build.ErrFetch,
		Run: func(ctx context.Context) error {
			return b.runner.Run(ctx, toolchain.GitClone(b.manifest.Vcpkg.URL, b.manifest.Vcpkg.Ref, l.VcpkgDir()))
		},
	}
}

func (b builder) bootstrapVcpkg() build.Stage {
	l := b.layout
	return build.Stage{
		Name:      "bootstrap-vcpkg",
		Artifacts: []string{l.VcpkgExe()},
		Requires:  []string{l.VcpkgDir()},
		Class:     build.ErrDependencyBuild,
		Run: func(ctx context.Context) error {
			return b.runner.Run(ctx, toolchain.Command{
				Path: filepath.Join(l.VcpkgDir(), "bootstrap-vcpkg.bat"),
				Args: []string{"-disableMetrics"},
				Dir:  l.VcpkgDir(),
			})
		},
	}
}

func (b builder) installPackages() build.Stage {
	l := b.layout
	return build.Stage{
		Name:      "install-deps",
		Artifacts: []string{l.VcpkgInstalled()},
		Requires:  []string{l.VcpkgExe()},
		Class:     build.ErrDependencyBuild,
		Run: func(ctx context.Context) error {
			args := append([]string{"install"}, b.manifest.Vcpkg.Packages...)
			args = append(args, "--triplet", l.Arch.Triplet(), "--no-binarycaching")
			return b.runner.Run(ctx, toolchain.Command{
				Path: l.VcpkgExe(),
				Args: args,
				Dir:  l.VcpkgDir(),
			})
		},
	}
}

func (b builder) fetchLuaRocks() build.Stage {
	l := b.layout
	return build.Stage{
		Name:      "fetch-luarocks",
		Artifacts: []string{l.LuaRocksSrcDir()},
		Class:     build.ErrFetch,
		Run: func(ctx context.Context) error {
			return b.runner.Run(ctx, toolchain.GitClone(b.manifest.LuaRocks.URL, b.manifest.LuaRocks.Ref, l.LuaRocksSrcDir()))
		},
	}
}

// Installs LuaRocks itself into the per-architecture prefix, pointed at the
// LuaJIT that vcpkg built.
func (b builder) installLuaRocks() build.Stage {
	l := b.layout
	luaDir := filepath.Join(l.VcpkgBuildTrees(), "luajit", l.Arch.Triplet()+"-rel", "src")

	return build.Stage{
		Name:      "install-luarocks",
		Artifacts: []string{l.LuaRocksExe()},
		Requires:  []string{l.LuaRocksSrcDir(), luaDir},
		Class:     build.ErrDependencyBuild,
		Run: func(ctx context.Context) error {
			include, err := paths.LuaJITInclude(l.VcpkgDir())
			if err != nil {
				return err
			}
			return b.runner.Run(ctx, toolchain.Command{
				Path: filepath.Join(l.LuaRocksSrcDir(), "install.bat"),
				Args: []string{
					"/SELFCONTAINED", "/NOREG", "/NOADMIN", "/Q",
					"/P", l.LuaRocksDir(),
					"/LUA", luaDir,
					"/INC", include,
				},
				Dir: l.LuaRocksSrcDir(),
			})
		},
	}
}

// Configures LuaRocks against the vcpkg LuaJIT and installs the manifest's
// rocks into the self-contained tree.
func (b builder) installRocks() build.Stage {
	l := b.layout
	return build.Stage{
		Name:      "install-rocks",
		Artifacts: b.rockArtifacts(),
		Requires:  []string{l.LuaRocksExe(), l.VcpkgInstalled()},
		Class:     build.ErrDependencyBuild,
		Run: func(ctx context.Context) error {
			cmds := []toolchain.Command{
				b.luarocks("config", "variables.LUA_LIBDIR", filepath.Join(l.VcpkgInstalled(), "lib")),
				b.luarocks("config", "variables.LUA_INCDIR", filepath.Join(l.VcpkgInstalled(), "include", "luajit")),
				b.luarocks("config", "variables.MSVC", "1"),
			}
			for _, rock := range b.manifest.LuaRocks.Rocks {
				cmds = append(cmds, b.luarocks("install", rock.Name))
			}
			return b.runAll(ctx, cmds...)
		},
	}
}

func (b builder) fetchLuanti() build.Stage {
	l := b.layout
	return build.Stage{
		Name:      "fetch-luanti",
		Artifacts: []string{l.SourceDir()},
		Class:     build.ErrFetch,
		Run: func(ctx context.Context) error {
			return b.runner.Run(ctx, toolchain.GitClone(b.manifest.Luanti.URL, b.manifest.Luanti.Ref, l.SourceDir()))
		},
	}
}

// Configures and compiles the engine, then renames the output directory to
// its architecture-tagged name.
func (b builder) compile() build.Stage {
	l := b.layout
	return build.Stage{
		Name:      "compile",
		Artifacts: []string{l.LuantiExe()},
		Requires:  []string{l.SourceDir(), l.VcpkgInstalled()},
		Class:     build.ErrCompile,
		Run: func(ctx context.Context) error {
			cmake, err := paths.FindCMake(l.VcpkgDir())
			if err != nil {
				return err
			}
			if err := b.clearCMakeCache(); err != nil {
				return err
			}

			configure := toolchain.Command{
				Path: cmake,
				Args: append([]string{".", "-G", b.manifest.CMake.Generator, "-A", l.Arch.CMakePlatform()}, b.definitions()...),
				Dir:  l.SourceDir(),
			}
			compile := toolchain.Command{
				Path: cmake,
				Args: []string{"--build", ".", "--config", "Release"},
				Dir:  l.SourceDir(),
			}
			if err := b.runAll(ctx, configure, compile); err != nil {
				return err
			}

			return b.renameRelease()
		},
	}
}

func (b builder) fetchGame() build.Stage {
	l := b.layout
	return build.Stage{
		Name:      "fetch-game",
		Artifacts: []string{l.GameDir()},
		Class:     build.ErrFetch,
		Run: func(ctx context.Context) error {
			return b.runner.Run(ctx, toolchain.GitClone(b.manifest.Game.URL, b.manifest.Game.Ref, l.GameDir()))
		},
	}
}

func (b builder) pack() build.Stage {
	l := b.layout
	return build.Stage{
		Name:      "package",
		Artifacts: []string{l.DistDir()},
		Requires:  []string{l.LuantiExe(), l.GameDir(), l.RockLibTree(), l.RockShareTree()},
		Run: func(context.Context) error {
			return dist.Assemble(b.plan())
		},
	}
}

// Removes stale CMake caches so a configure against a fresh vcpkg tree does
// not reuse paths from an earlier run.
func (b builder) clearCMakeCache() error {
	src := b.layout.SourceDir()

	if err := os.RemoveAll(filepath.Join(src, "CMakeFiles")); err != nil {
		return fmt.Errorf("%w: %w", paths.ErrFileSystem, err)
	}
	if err := os.Remove(filepath.Join(src, "CMakeCache.txt")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", paths.ErrFileSystem, err)
	}
	return nil
}

// Moves CMake's bin/Release output to the architecture-tagged directory the
// packaging stage consumes.
func (b builder) renameRelease() error {
	src := filepath.Join(b.layout.SourceDir(), "bin", "Release")
	if err := os.Rename(src, b.layout.ReleaseBinDir()); err != nil {
		return fmt.Errorf("%w: %w", paths.ErrFileSystem, err)
	}
	return nil
}
