// Package recipe declares the concrete Luanti build pipeline.
//
// Each stage binds a manifest entry to filesystem locations from the layout
// and to the external commands that produce them: git checkouts, the vcpkg
// bootstrap and package build, the LuaRocks installation, the CMake
// configure and compile, and the final distribution assembly. The build
// package decides which of these actually run.
package recipe
