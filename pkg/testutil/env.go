package testutil

import (
	"os"
	"strings"
	"testing"
)

// EnvPrefix is the prefix of configuration environment variables
const EnvPrefix = "SCRIPTEXT_"

// Isolate sends the log file to a temporary state directory and hides
// SCRIPTEXT_ variables for the duration of the test.
func Isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		// Setenv first so the value is restored after the test
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("Failed to unset %s: %v", key, err)
		}
	}
}
