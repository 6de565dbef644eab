// Build manifest loading.
//
// A manifest pins every input of a build: the Luanti and game repositories,
// the vcpkg package set, the Lua rocks, the CMake configuration, and the
// packaging layout. Built-in defaults reproduce the stable-5 Windows build;
// a luantibuild.yaml file can override any key.
package manifest
