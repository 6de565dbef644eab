package toolchain

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables set by the Visual Studio developer command prompt.
// The compiler, linker, and CMake's toolchain detection all depend on them.
var msvcVars = []string{
	"VSINSTALLDIR",
	"VCINSTALLDIR",
	"DevEnvDir",
	"INCLUDE",
	"LIB",
	"LIBPATH",
}

// Verifies that the process runs inside an MSVC developer command prompt.
//
// The returned error wraps [ErrMissingEnv] and names every missing variable,
// not just the first one found.
func CheckEnv() error {
	return checkEnv(msvcVars)
}

func checkEnv(vars []string) error {
	var missing []string
	for _, v := range vars {
		if _, ok := os.LookupEnv(v); !ok {
			missing = append(missing, v)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
}
