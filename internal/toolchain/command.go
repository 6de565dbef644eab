package toolchain

import "strings"

// Describes one external tool invocation.
type Command struct {
	Path string   // Executable to run, absolute or resolved via PATH.
	Args []string // Arguments, not including the executable itself.
	Dir  string   // Working directory; empty means the process's own.
}

// Returns the full command line for logging.
func (c Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// Returns the command to clone a repository pinned to a branch or tag.
//
// Only the pinned ref is fetched. Detached-head advice is silenced because
// tag pins always detach.
func GitClone(url, ref, dest string) Command {
	return Command{
		Path: "git",
		Args: []string{
			"clone", "--single-branch", "--branch", ref,
			"-c", "advice.detachedHead=false",
			url, dest,
		},
	}
}
