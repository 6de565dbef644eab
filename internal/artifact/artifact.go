package artifact

import (
	"errors"
	"fmt"
	"os"
)

var ErrIncomplete = errors.New("stage incomplete")

// Reports whether the artifact at path exists.
//
// Files and directories both count; existence is the sole completion signal.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Reports whether every listed artifact exists.
func AllExist(paths []string) bool {
	for _, p := range paths {
		if !Exists(p) {
			return false
		}
	}
	return true
}

// Fails if the expected artifact is absent.
//
// Called after a stage's actions report success, guarding against external
// tools that exit zero without producing their output. The returned error
// wraps [ErrIncomplete] and names the missing path.
func Verify(path string) error {
	if Exists(path) {
		return nil
	}
	return fmt.Errorf("%w: missing artifact %s", ErrIncomplete, path)
}
