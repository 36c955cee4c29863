package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestResolveLogFilePathDefaultDir(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	got, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}
	realTmpDir, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("resolve tmp dir symlink failed: %v", err)
	}
	realGot, err := filepath.EvalSymlinks(filepath.Dir(got))
	if err != nil {
		t.Fatalf("resolve got dir symlink failed: %v", err)
	}
	if realGot != filepath.Join(realTmpDir, defaultLogDirName) {
		t.Fatalf("unexpected log dir: %s", realGot)
	}
	if filepath.Base(got) != defaultLogFilename {
		t.Fatalf("unexpected log filename: %s", filepath.Base(got))
	}
}

func TestNewReleaseWritesJSONToFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Dir: tmpDir, Filename: "release.log"})
	log.Sugar().Infow("checkout_completed", "user_id", 7)
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "release.log"))
	if err != nil {
		t.Fatalf("read release log failed: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, `"message":"checkout_completed"`) {
		t.Fatalf("expected json message field, got=%s", text)
	}
	if !strings.Contains(text, `"user_id":7`) {
		t.Fatalf("expected structured field, got=%s", text)
	}
}

func TestNewReleaseRespectsLevel(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Level: "warn", Dir: tmpDir, Filename: "warn.log"})
	log.Info("info-should-be-dropped")
	log.Warn("warn-should-be-kept")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "warn.log"))
	if err != nil {
		t.Fatalf("read log failed: %v", err)
	}
	if strings.Contains(string(content), "info-should-be-dropped") {
		t.Fatalf("info entry should be filtered at warn level")
	}
	if !strings.Contains(string(content), "warn-should-be-kept") {
		t.Fatalf("warn entry missing")
	}
}

func TestNewDebugDoesNotWriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("debug", Options{Dir: tmpDir, Filename: "debug.log"})
	log.Info("debug-log-test")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create log file")
	}
}

func TestResolveLevel(t *testing.T) {
	cases := []struct {
		raw   string
		debug bool
		want  zapcore.Level
	}{
		{"", false, zapcore.InfoLevel},
		{"ERROR", false, zapcore.ErrorLevel},
		{"verbose", false, zapcore.InfoLevel},
		{"error", true, zapcore.DebugLevel},
	}
	for _, tc := range cases {
		if got := resolveLevel(tc.raw, tc.debug); got != tc.want {
			t.Fatalf("resolveLevel(%q, %v) want %v got %v", tc.raw, tc.debug, tc.want, got)
		}
	}
}
