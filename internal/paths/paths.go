package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	toolName = "luantibuild"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

var ErrFileSystem = errors.New("file system operation failed")

// Resolves every per-architecture location of one build.
//
// All derived paths live under two architecture-namespaced trees: the build
// root (tool cache and source checkouts) and the distribution root (the final
// merged package). A Layout never aliases another architecture's paths.
type Layout struct {
	Root string // Project root holding the build and dist trees.
	Arch Arch   // Target architecture namespacing every derived path.
}

// Derives the layout under root and creates its base directories.
//
// Missing intermediate directories are created; existing directories are left
// untouched. An explicit reset is the only operation that removes them.
func Resolve(root string, arch Arch) (Layout, error) {
	l := Layout{Root: root, Arch: arch}

	for _, dir := range []string{l.ToolsDir(), l.SrcDir()} {
		if err := os.MkdirAll(dir, DefaultDirMode); err != nil {
			return Layout{}, fmt.Errorf("%w: %w", ErrFileSystem, err)
		}
	}

	return l, nil
}

// Removes every artifact of one architecture, build and dist trees both.
//
// Other architectures' trees are untouched. Resetting precedes path
// resolution, so the next Resolve starts from an empty namespace and every
// stage of the next run re-executes.
func Reset(root string, arch Arch) error {
	l := Layout{Root: root, Arch: arch}

	for _, dir := range []string{l.BuildRoot(), l.DistDir()} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("%w: %w", ErrFileSystem, err)
		}
	}

	return nil
}

// Architecture-namespaced root for all build state.
func (l Layout) BuildRoot() string {
	return filepath.Join(l.Root, "build", string(l.Arch))
}

// Cache for fetched and bootstrapped toolchains.
func (l Layout) ToolsDir() string {
	return filepath.Join(l.BuildRoot(), "tools")
}

// The vcpkg checkout.
func (l Layout) VcpkgDir() string {
	return filepath.Join(l.ToolsDir(), "vcpkg")
}

// The bootstrapped vcpkg executable.
func (l Layout) VcpkgExe() string {
	return filepath.Join(l.VcpkgDir(), "vcpkg.exe")
}

// The tree vcpkg installs compiled packages into for this triplet.
func (l Layout) VcpkgInstalled() string {
	return filepath.Join(l.VcpkgDir(), "installed", l.Arch.Triplet())
}

// Per-package build trees vcpkg leaves behind after compilation.
func (l Layout) VcpkgBuildTrees() string {
	return filepath.Join(l.VcpkgDir(), "buildtrees")
}

// The CMake toolchain file wiring vcpkg packages into the configure step.
func (l Layout) VcpkgToolchainFile() string {
	return filepath.Join(l.VcpkgDir(), "scripts", "buildsystems", "vcpkg.cmake")
}

// The LuaRocks checkout.
func (l Layout) LuaRocksSrcDir() string {
	return filepath.Join(l.ToolsDir(), "luarocks")
}

// The per-architecture LuaRocks installation prefix.
func (l Layout) LuaRocksDir() string {
	return filepath.Join(l.ToolsDir(), "luarocks_"+string(l.Arch))
}

// The installed LuaRocks entry point.
func (l Layout) LuaRocksExe() string {
	return filepath.Join(l.LuaRocksDir(), "luarocks.bat")
}

// The self-contained tree LuaRocks installs modules into.
func (l Layout) SysTree() string {
	return filepath.Join(l.LuaRocksDir(), "systree")
}

// Compiled Lua modules (DLLs) installed by LuaRocks.
func (l Layout) RockLibTree() string {
	return filepath.Join(l.SysTree(), "lib", "lua", "5.1")
}

// Pure-Lua modules installed by LuaRocks.
func (l Layout) RockShareTree() string {
	return filepath.Join(l.SysTree(), "share", "lua", "5.1")
}

// Root for source checkouts.
func (l Layout) SrcDir() string {
	return filepath.Join(l.BuildRoot(), "src")
}

// The engine source checkout.
func (l Layout) SourceDir() string {
	return filepath.Join(l.SrcDir(), "luanti")
}

// The companion game content checkout.
func (l Layout) GameDir() string {
	return filepath.Join(l.SrcDir(), "game")
}

// Where the compiled binaries land after the post-build rename. CMake always
// writes bin/Release; the compile stage renames it to the architecture-tagged
// name the packaging stage consumes.
func (l Layout) ReleaseBinDir() string {
	return filepath.Join(l.SourceDir(), "bin", "Release_"+string(l.Arch))
}

// The compiled engine executable.
func (l Layout) LuantiExe() string {
	return filepath.Join(l.ReleaseBinDir(), "luanti.exe")
}

// The final merged distribution tree.
func (l Layout) DistDir() string {
	return filepath.Join(l.Root, "dist", "luanti_"+string(l.Arch))
}

// Locates the cmake executable bundled by vcpkg.
//
// vcpkg downloads its own CMake distribution under downloads/tools; the
// directory name carries the version, so the path is only knowable after the
// bootstrap stage has run.
func FindCMake(vcpkgDir string) (string, error) {
	toolsDir := filepath.Join(vcpkgDir, "downloads", "tools")

	entries, err := os.ReadDir(toolsDir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileSystem, err)
	}

	for _, e := range entries {
		if !e.IsDir() || !strings.Contains(e.Name(), "cmake") {
			continue
		}

		inner, err := os.ReadDir(filepath.Join(toolsDir, e.Name()))
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrFileSystem, err)
		}
		if len(inner) == 0 {
			continue
		}

		return filepath.Join(toolsDir, e.Name(), inner[0].Name(), "bin", "cmake.exe"), nil
	}

	return "", fmt.Errorf("%w: no cmake distribution under %s", ErrFileSystem, toolsDir)
}

// Locates the LuaJIT source headers vcpkg unpacked.
//
// The single directory under buildtrees/luajit/src carries the upstream
// version in its name, so the include path is resolved late, after the
// package install stage has run.
func LuaJITInclude(vcpkgDir string) (string, error) {
	srcDir := filepath.Join(vcpkgDir, "buildtrees", "luajit", "src")

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileSystem, err)
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("%w: no luajit sources under %s", ErrFileSystem, srcDir)
	}

	return filepath.Join(srcDir, entries[0].Name(), "src"), nil
}

// The user-level directory searched for manifest files.
//
//	Linux:   $XDG_CONFIG_HOME/luantibuild or ~/.config/luantibuild
//	macOS:   ~/Library/Application Support/luantibuild
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, toolName)
}
