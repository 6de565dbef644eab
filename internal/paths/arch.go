package paths

// Target CPU architecture of a build.
//
// The architecture is fixed for an entire run and namespaces every path the
// run touches, so builds for different architectures never collide.
type Arch string

const (
	X86 Arch = "x86"
	X64 Arch = "x64"
)

// Returns the vcpkg platform triplet (e.g., "x86-windows").
func (a Arch) Triplet() string {
	return string(a) + "-windows"
}

// Returns the platform name passed to the Visual Studio generator.
func (a Arch) CMakePlatform() string {
	if a == X64 {
		return "x64"
	}
	return "Win32"
}
