package golox_test

import (
	"os"
	"testing"
)

// newTempFile writes source to a temp *.lox file and returns its path,
// cleaned up automatically at the end of the test.
func newTempFile(t *testing.T, source string) (string, error) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "*.lox")
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.WriteString(source); err != nil {
		return "", err
	}
	return f.Name(), nil
}
