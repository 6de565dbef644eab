package recipe

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/luantibuild/luantibuild/internal/build"
	"github.com/luantibuild/luantibuild/internal/dist"
	"github.com/luantibuild/luantibuild/internal/manifest"
	"github.com/luantibuild/luantibuild/internal/paths"
	"github.com/luantibuild/luantibuild/internal/toolchain"
)

type fakeRunner struct {
	cmds []toolchain.Command
	err  error
}

func (f *fakeRunner) Run(_ context.Context, cmd toolchain.Command) error {
	f.cmds = append(f.cmds, cmd)
	return f.err
}

func testManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Luanti: manifest.Source{URL: "https://example.org/luanti.git", Ref: "stable-5"},
		Game: manifest.Game{
			Source: manifest.Source{URL: "https://example.org/game.git", Ref: "stable-5"},
			Name:   "minetest_game",
		},
		Vcpkg: manifest.Vcpkg{
			Source:   manifest.Source{URL: "https://example.org/vcpkg.git", Ref: "master"},
			Packages: []string{"zlib", "luajit"},
		},
		LuaRocks: manifest.LuaRocks{
			Source: manifest.Source{URL: "https://example.org/luarocks.git", Ref: "master"},
			Rocks: []manifest.Rock{
				{Name: "luasocket", Probe: "socket/core.dll"},
				{Name: "lua-cjson", Probe: "cjson.dll"},
			},
		},
		CMake: manifest.CMake{
			Generator: "Visual Studio 16 2019",
			Definitions: []string{
				"CMAKE_TOOLCHAIN_FILE=${vcpkg}/scripts/buildsystems/vcpkg.cmake",
				"ENABLE_GETTEXT=1",
			},
		},
		Packaging: manifest.Packaging{
			Trees:     []string{"builtin", "doc"},
			Files:     []string{"LICENSE.txt"},
			Exclude:   []string{"luanti.pdb", ".git"},
			ExtraDirs: []string{"worlds"},
		},
	}
}

func testBuilder(root string) (builder, *fakeRunner) {
	runner := &fakeRunner{}
	b := builder{
		layout:   paths.Layout{Root: root, Arch: paths.X86},
		manifest: testManifest(),
		runner:   runner,
	}
	return b, runner
}

func stageByName(t *testing.T, stages []build.Stage, name string) build.Stage {
	t.Helper()

	for _, s := range stages {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("no stage named %q", name)
	return build.Stage{}
}

func TestStagesOrder(t *testing.T) {
	b, _ := testBuilder("root")
	stages := Stages(b.layout, b.manifest, b.runner)

	var names []string
	for _, s := range stages {
		names = append(names, s.Name)
	}

	want := []string{
		"fetch-vcpkg",
		"bootstrap-vcpkg",
		"install-deps",
		"fetch-luarocks",
		"install-luarocks",
		"install-rocks",
		"fetch-luanti",
		"compile",
		"fetch-game",
		"package",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("stage order mismatch (-want +got):\n%s", diff)
	}
}

func TestStageDeclarations(t *testing.T) {
	b, _ := testBuilder("root")
	l := b.layout
	stages := Stages(l, b.manifest, b.runner)

	tests := []struct {
		name      string
		artifacts []string
		requires  []string
		class     error
	}{
		{
			name:      "fetch-vcpkg",
			artifacts: []string{l.VcpkgDir()},
			class:     build.ErrFetch,
		},
		{
			name:      "bootstrap-vcpkg",
			artifacts: []string{l.VcpkgExe()},
			requires:  []string{l.VcpkgDir()},
			class:     build.ErrDependencyBuild,
		},
		{
			name:      "install-deps",
			artifacts: []string{l.VcpkgInstalled()},
			requires:  []string{l.VcpkgExe()},
			class:     build.ErrDependencyBuild,
		},
		{
			name: "install-rocks",
			artifacts: []string{
				filepath.Join(l.RockLibTree(), "socket", "core.dll"),
				filepath.Join(l.RockLibTree(), "cjson.dll"),
			},
			requires: []string{l.LuaRocksExe(), l.VcpkgInstalled()},
			class:    build.ErrDependencyBuild,
		},
		{
			name:      "compile",
			artifacts: []string{l.LuantiExe()},
			requires:  []string{l.SourceDir(), l.VcpkgInstalled()},
			class:     build.ErrCompile,
		},
		{
			name:      "package",
			artifacts: []string{l.DistDir()},
			requires:  []string{l.LuantiExe(), l.GameDir(), l.RockLibTree(), l.RockShareTree()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stageByName(t, stages, tt.name)

			if diff := cmp.Diff(tt.artifacts, s.Artifacts); diff != "" {
				t.Errorf("Artifacts mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.requires, s.Requires); diff != "" {
				t.Errorf("Requires mismatch (-want +got):\n%s", diff)
			}
			if s.Class != tt.class {
				t.Errorf("Class = %v, want %v", s.Class, tt.class)
			}
		})
	}
}

func TestFetchVcpkgCommand(t *testing.T) {
	b, runner := testBuilder("root")
	stage := b.fetchVcpkg()

	if err := stage.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []toolchain.Command{
		toolchain.GitClone("https://example.org/vcpkg.git", "master", b.layout.VcpkgDir()),
	}
	if diff := cmp.Diff(want, runner.cmds); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestInstallPackagesCommand(t *testing.T) {
	b, runner := testBuilder("root")
	stage := b.installPackages()

	if err := stage.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []toolchain.Command{{
		Path: b.layout.VcpkgExe(),
		Args: []string{"install", "zlib", "luajit", "--triplet", "x86-windows", "--no-binarycaching"},
		Dir:  b.layout.VcpkgDir(),
	}}
	if diff := cmp.Diff(want, runner.cmds); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestInstallLuaRocksCommand(t *testing.T) {
	b, runner := testBuilder(t.TempDir())
	l := b.layout

	luajitSrc := filepath.Join(l.VcpkgBuildTrees(), "luajit", "src", "LuaJIT-2.1.0-beta3")
	if err := os.MkdirAll(luajitSrc, 0o755); err != nil {
		t.Fatal(err)
	}

	stage := b.installLuaRocks()
	if err := stage.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []toolchain.Command{{
		Path: filepath.Join(l.LuaRocksSrcDir(), "install.bat"),
		Args: []string{
			"/SELFCONTAINED", "/NOREG", "/NOADMIN", "/Q",
			"/P", l.LuaRocksDir(),
			"/LUA", filepath.Join(l.VcpkgBuildTrees(), "luajit", "x86-windows-rel", "src"),
			"/INC", filepath.Join(luajitSrc, "src"),
		},
		Dir: l.LuaRocksSrcDir(),
	}}
	if diff := cmp.Diff(want, runner.cmds); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestInstallRocksCommands(t *testing.T) {
	b, runner := testBuilder("root")
	l := b.layout

	stage := b.installRocks()
	if err := stage.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []toolchain.Command{
		{Path: l.LuaRocksExe(), Args: []string{"config", "variables.LUA_LIBDIR", filepath.Join(l.VcpkgInstalled(), "lib")}},
		{Path: l.LuaRocksExe(), Args: []string{"config", "variables.LUA_INCDIR", filepath.Join(l.VcpkgInstalled(), "include", "luajit")}},
		{Path: l.LuaRocksExe(), Args: []string{"config", "variables.MSVC", "1"}},
		{Path: l.LuaRocksExe(), Args: []string{"install", "luasocket"}},
		{Path: l.LuaRocksExe(), Args: []string{"install", "lua-cjson"}},
	}
	if diff := cmp.Diff(want, runner.cmds); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileCommands(t *testing.T) {
	b, runner := testBuilder(t.TempDir())
	l := b.layout

	cmakeBin := filepath.Join(l.VcpkgDir(), "downloads", "tools", "cmake-3.29.2-windows", "cmake-3.29.2-windows-i386", "bin")
	if err := os.MkdirAll(cmakeBin, 0o755); err != nil {
		t.Fatal(err)
	}
	cmakePath := filepath.Join(cmakeBin, "cmake.exe")
	if err := os.WriteFile(cmakePath, nil, 0o755); err != nil {
		t.Fatal(err)
	}

	src := l.SourceDir()
	if err := os.MkdirAll(filepath.Join(src, "CMakeFiles"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "CMakeCache.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	release := filepath.Join(src, "bin", "Release")
	if err := os.MkdirAll(release, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(release, "luanti.exe"), nil, 0o755); err != nil {
		t.Fatal(err)
	}

	stage := b.compile()
	if err := stage.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []toolchain.Command{
		{
			Path: cmakePath,
			Args: []string{
				".", "-G", "Visual Studio 16 2019", "-A", "Win32",
				"-DCMAKE_TOOLCHAIN_FILE=" + filepath.ToSlash(l.VcpkgDir()) + "/scripts/buildsystems/vcpkg.cmake",
				"-DENABLE_GETTEXT=1",
			},
			Dir: src,
		},
		{
			Path: cmakePath,
			Args: []string{"--build", ".", "--config", "Release"},
			Dir:  src,
		},
	}
	if diff := cmp.Diff(want, runner.cmds); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}

	if _, err := os.Stat(filepath.Join(src, "CMakeFiles")); err == nil {
		t.Error("CMakeFiles not removed before configure")
	}
	if _, err := os.Stat(filepath.Join(src, "CMakeCache.txt")); err == nil {
		t.Error("CMakeCache.txt not removed before configure")
	}
	if _, err := os.Stat(l.LuantiExe()); err != nil {
		t.Errorf("Release directory not renamed: %v", err)
	}
	if _, err := os.Stat(release); err == nil {
		t.Error("bin/Release still present after rename")
	}
}

func TestPlan(t *testing.T) {
	b, _ := testBuilder("root")
	l := b.layout

	want := dist.Plan{
		Root: l.DistDir(),
		Sources: []dist.Source{
			{Path: l.ReleaseBinDir(), Dest: "bin"},
			{Path: filepath.Join(l.SourceDir(), "builtin"), Dest: "builtin"},
			{Path: filepath.Join(l.SourceDir(), "doc"), Dest: "doc"},
			{Path: filepath.Join(l.SourceDir(), "LICENSE.txt"), Dest: "LICENSE.txt"},
			{Path: l.GameDir(), Dest: filepath.Join("games", "minetest_game")},
			{Path: l.RockLibTree(), Dest: "bin"},
			{Path: l.RockShareTree(), Dest: filepath.Join("bin", "lua")},
		},
		Exclude:   []string{"luanti.pdb", ".git"},
		ExtraDirs: []string{"worlds"},
	}
	if diff := cmp.Diff(want, b.plan()); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
}
