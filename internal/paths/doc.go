// Derives canonical, architecture-namespaced locations for build state.
//
// A [Layout] maps one project root and one target architecture onto every
// path a build touches: the build root, the tool cache (vcpkg and LuaRocks),
// the source checkouts, and the distribution output. Paths for different
// architectures never overlap, which is what makes concurrent runs for
// different targets safe.
//
// Two locations are only knowable after a stage has run and are resolved
// late: the CMake executable vcpkg downloads, and the LuaJIT include
// directory vcpkg unpacks.
package paths
