package toolchain

import (
	"errors"
	"strings"
	"testing"
)

func TestCheckEnvAllPresent(t *testing.T) {
	t.Setenv("LUANTIBUILD_TEST_A", "1")
	t.Setenv("LUANTIBUILD_TEST_B", "c:\\tools")

	err := checkEnv([]string{"LUANTIBUILD_TEST_A", "LUANTIBUILD_TEST_B"})
	if err != nil {
		t.Errorf("checkEnv() = %v, want nil", err)
	}
}

func TestCheckEnvEmptyValueCountsAsPresent(t *testing.T) {
	t.Setenv("LUANTIBUILD_TEST_EMPTY", "")

	err := checkEnv([]string{"LUANTIBUILD_TEST_EMPTY"})
	if err != nil {
		t.Errorf("checkEnv() = %v for set-but-empty variable, want nil", err)
	}
}

func TestCheckEnvReportsAllMissing(t *testing.T) {
	t.Setenv("LUANTIBUILD_TEST_PRESENT", "1")

	err := checkEnv([]string{
		"LUANTIBUILD_TEST_MISSING_A",
		"LUANTIBUILD_TEST_PRESENT",
		"LUANTIBUILD_TEST_MISSING_B",
	})
	if err == nil {
		t.Fatal("checkEnv() = nil, want error")
	}
	if !errors.Is(err, ErrMissingEnv) {
		t.Errorf("checkEnv() error = %v, want ErrMissingEnv", err)
	}

	msg := err.Error()
	for _, name := range []string{"LUANTIBUILD_TEST_MISSING_A", "LUANTIBUILD_TEST_MISSING_B"} {
		if !strings.Contains(msg, name) {
			t.Errorf("checkEnv() error %q does not name %s", msg, name)
		}
	}
	if strings.Contains(msg, "LUANTIBUILD_TEST_PRESENT") {
		t.Errorf("checkEnv() error %q names a present variable", msg)
	}
}
