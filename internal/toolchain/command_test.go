package toolchain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGitClone(t *testing.T) {
	got := GitClone("https://github.com/luanti-org/luanti.git", "5.13.0", "/work/src/luanti")

	want := Command{
		Path: "git",
		Args: []string{
			"clone", "--single-branch", "--branch", "5.13.0",
			"-c", "advice.detachedHead=false",
			"https://github.com/luanti-org/luanti.git", "/work/src/luanti",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GitClone() mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandString(t *testing.T) {
	cmd := Command{Path: "vcpkg.exe", Args: []string{"install", "zlib", "--triplet", "x86-windows"}}

	want := "vcpkg.exe install zlib --triplet x86-windows"
	if got := cmd.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
