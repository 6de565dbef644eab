package dist

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/luantibuild/luantibuild/internal/paths"
)

// Source describes one merge input.
type Source struct {
	Path string // File or directory to copy from.
	Dest string // Destination relative to the distribution root.
}

// Plan describes a distribution to assemble.
type Plan struct {
	Root      string   // Distribution directory, created if absent.
	Sources   []Source // Merged in order; later sources overwrite earlier files.
	Exclude   []string // Base names dropped from every copied tree.
	ExtraDirs []string // Empty directories created after the merge.
}

// Assembles the distribution directory from the plan.
//
// Sources are merged in declaration order, so a file contributed by two
// sources ends up with the later one's content. A missing source aborts the
// assembly with [ErrMissingSource].
func Assemble(plan Plan) error {
	slog.Info("assembling distribution", "dist", plan.Root, "sources", len(plan.Sources))

	if err := os.MkdirAll(plan.Root, paths.DefaultDirMode); err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}

	for _, src := range plan.Sources {
		if err := merge(src, plan.Root, plan.Exclude); err != nil {
			return err
		}
	}

	for _, dir := range plan.ExtraDirs {
		if err := os.MkdirAll(filepath.Join(plan.Root, dir), paths.DefaultDirMode); err != nil {
			return fmt.Errorf("%w: %w", ErrCopy, err)
		}
	}
	return nil
}

// Copies one source into the distribution root.
func merge(src Source, root string, exclude []string) error {
	info, err := os.Stat(src.Path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrMissingSource, src.Path)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}

	dest := filepath.Join(root, src.Dest)
	slog.Debug("merging", "src", src.Path, "dest", dest, "dir", info.IsDir())

	if info.IsDir() {
		return copyTree(src.Path, dest, exclude)
	}
	return copyFile(src.Path, dest)
}

// Copies a directory tree, overwriting existing files and pruning excluded
// names.
func copyTree(srcDir, destDir string, exclude []string) error {
	return filepath.WalkDir(srcDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCopy, err)
		}

		if slices.Contains(exclude, d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCopy, err)
		}
		target := filepath.Join(destDir, rel)

		if d.IsDir() {
			if err := os.MkdirAll(target, paths.DefaultDirMode); err != nil {
				return fmt.Errorf("%w: %w", ErrCopy, err)
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), paths.DefaultDirMode); err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, paths.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}
	return nil
}
