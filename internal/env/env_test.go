package env

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestWorkDir(t *testing.T) {
	dir, err := WorkDir()
	if err != nil {
		t.Fatalf("WorkDir: %v", err)
	}
	if filepath.Base(dir) != ".h5pack" {
		t.Errorf("WorkDir = %q, want .h5pack suffix", dir)
	}
}

func TestLayoutDirs(t *testing.T) {
	l, err := NewLayout("/ws")
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}

	if got := l.BuildDir("h5pp", "1.8.1", "abc"); got != filepath.Join("/ws", "build", "h5pp", "1.8.1", "abc") {
		t.Errorf("BuildDir = %q", got)
	}
	if got := l.PackageDir("h5pp", "1.8.1", "abc"); got != filepath.Join("/ws", "package", "h5pp", "1.8.1", "abc") {
		t.Errorf("PackageDir = %q", got)
	}
	if got := l.DepDir("eigen", "3.3.7"); got != filepath.Join("/ws", "deps", "eigen", "3.3.7") {
		t.Errorf("DepDir = %q", got)
	}
}

func TestLayoutDefaultRoot(t *testing.T) {
	l, err := NewLayout("")
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	if !strings.HasSuffix(l.Root(), ".h5pack") {
		t.Errorf("Root = %q, want default workspace", l.Root())
	}
}
