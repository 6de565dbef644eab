// Host toolchain invocation for the build stages.
//
// Stages describe external commands (git, vcpkg, CMake, LuaRocks) as
// [Command] values and hand them to a [Runner]. [CheckEnv] guards the whole
// pipeline by verifying the MSVC developer prompt environment before any
// command runs.
package toolchain
