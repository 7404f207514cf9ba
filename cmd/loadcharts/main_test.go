package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iafilius/loadtestcharts/src/config"
	"github.com/iafilius/loadtestcharts/src/layout"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderPrintsSavedPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts.png")
	out, err := run(t, "-o", path, "--dpi", "40")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "Saved: "+path+"\n" {
		t.Fatalf("stdout = %q", out)
	}
	if st, err := os.Stat(path); err != nil || st.Size() == 0 {
		t.Fatalf("output missing: %v", err)
	}
}

func TestRenderUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "charts.png")
	out, err := run(t, "-o", path, "--dpi", "40", "--variant", "breakpoint")
	if !errors.Is(err, layout.ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("error lacks path: %v", err)
	}
	if out != "" {
		t.Fatalf("unexpected stdout %q", out)
	}
}

func TestConfigCommand(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(cfgFile, []byte("variant: breakpoint\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "config", "--config", cfgFile, "--dpi", "90")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"variant: breakpoint", "dpi: 90", "output: " + config.DefaultOutput} {
		if !strings.Contains(out, want) {
			t.Errorf("config output lacks %q:\n%s", want, out)
		}
	}
}

func TestInvalidFlagValue(t *testing.T) {
	_, err := run(t, "--variant", "v7", "-o", filepath.Join(t.TempDir(), "x.png"))
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
