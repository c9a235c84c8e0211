package filesystem

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCopyTreePreservesStructureAndModes(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "copy")

	if err := os.MkdirAll(filepath.Join(src, "pkg", "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "pkg", "sub", "mod.py"), []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "run.py"), []byte("#!/usr/bin/env python3\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := CopyTree(src, dst); err != nil {
		t.Fatalf("CopyTree error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dst, "pkg", "sub", "mod.py"))
	if err != nil || string(data) != "x = 1\n" {
		t.Fatalf("nested file not copied: %q, %v", data, err)
	}
	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(dst, "run.py"))
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm()&0o111 == 0 {
			t.Fatalf("expected executable bit to be preserved, got %v", info.Mode())
		}
	}
}

func TestRemoveIfExistsToleratesMissing(t *testing.T) {
	existed, err := RemoveIfExists(filepath.Join(t.TempDir(), "never-created"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if existed {
		t.Fatal("expected missing path to report existed=false")
	}

	dir := filepath.Join(t.TempDir(), "tree")
	if err := os.MkdirAll(filepath.Join(dir, "a"), 0o755); err != nil {
		t.Fatal(err)
	}
	existed, err = RemoveIfExists(dir)
	if err != nil || !existed {
		t.Fatalf("expected removal, got existed=%v err=%v", existed, err)
	}
	if Exists(dir) {
		t.Fatal("directory still present")
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	if got := ExpandPath("~/cfg/x.yaml"); got != filepath.Join(home, "cfg", "x.yaml") {
		t.Fatalf("unexpected expansion %s", got)
	}
	if got := ExpandPath("/abs/path/"); got != filepath.Clean("/abs/path/") {
		t.Fatalf("unexpected clean %s", got)
	}
}
