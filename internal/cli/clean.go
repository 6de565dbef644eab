package cli

import (
	"context"
	"log/slog"

	"github.com/luantibuild/luantibuild/internal/paths"
)

// Represents the 'luantibuild clean' command.
type CleanCmd struct {
	Arch paths.Arch `help:"Target architecture." enum:"x86,x64" default:"x86"`
	Root string     `help:"Project root holding the build and dist trees." default:"." type:"path"`
}

// Executes the clean command, removing the architecture's build and dist
// trees so the next build starts from nothing.
func (c *CleanCmd) Run(ctx context.Context) error {
	slog.Info("cleaning", "arch", c.Arch, "root", c.Root)
	return paths.Reset(c.Root, c.Arch)
}
