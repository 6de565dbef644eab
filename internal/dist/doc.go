// Package dist assembles the shippable distribution directory.
//
// Assembly is an ordered merge: the compiled binaries, the engine's data
// trees, the default game, and the Lua rocks runtime are copied into one
// directory, with later sources overwriting earlier files. Exclusion by base
// name keeps debug symbols and .git directories out of the result.
package dist
