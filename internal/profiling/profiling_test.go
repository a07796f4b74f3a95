package profiling

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStart_Disabled(t *testing.T) {
	stop, err := Start("", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stop()
	stop()
}

func TestStart_WritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cpuPath := filepath.Join(dir, "cpu.pprof")
	memPath := filepath.Join(dir, "mem.pprof")

	var logged []string
	stop, err := Start(cpuPath, memPath, func(format string, args ...any) {
		logged = append(logged, format)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stop()
	stop()

	for _, p := range []string{cpuPath, memPath} {
		info, err := os.Stat(p)
		if err != nil {
			t.Errorf("profile %s not written: %v", p, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("profile %s is empty", p)
		}
	}
	if len(logged) != 2 {
		t.Errorf("expected two log lines, got %v", logged)
	}
}

func TestStart_BadPath(t *testing.T) {
	_, err := Start(filepath.Join(t.TempDir(), "missing", "cpu.pprof"), "", nil)
	if err == nil {
		t.Error("expected error for unwritable cpu profile path")
	}
}
