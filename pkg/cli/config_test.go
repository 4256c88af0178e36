package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Fepozopo/glitchlab/pkg/glitch"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("GLITCHLAB_TEST_NEW", "")
	os.Unsetenv("GLITCHLAB_TEST_NEW")
	t.Setenv("GLITCHLAB_TEST_KEEP", "mine")

	path := filepath.Join(t.TempDir(), ".env")
	content := "GLITCHLAB_TEST_NEW=hello\nGLITCHLAB_TEST_KEEP=theirs\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("GLITCHLAB_TEST_NEW"); got != "hello" {
		t.Fatalf("expected GLITCHLAB_TEST_NEW=hello, got %q", got)
	}
	if got := os.Getenv("GLITCHLAB_TEST_KEEP"); got != "mine" {
		t.Fatalf("existing variable was overridden: %q", got)
	}
}

func TestSetupLogging(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		glitch.SetLogger(nil)
	})

	var buf bytes.Buffer
	logger := SetupLogging(&buf, "warn")
	if glitch.Logger() != logger {
		t.Fatal("glitch package did not receive the logger")
	}

	slog.Info("hidden")
	slog.Warn("shown", "transform", "gamma")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record written at warn level: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "transform=gamma") {
		t.Fatalf("unexpected log output: %q", out)
	}
}
