package build

import "errors"

var (
	ErrFetch           = errors.New("fetch failed")
	ErrDependencyBuild = errors.New("dependency build failed")
	ErrCompile         = errors.New("compile failed")
)
