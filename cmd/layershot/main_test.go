package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "layers.png")
	if err := run(160, 120, 1, 2, out); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Errorf("image size = %dx%d, want 320x240", b.Dx(), b.Dy())
	}
}

func TestRunErrors(t *testing.T) {
	if err := run(0, 30, 1, 1, filepath.Join(t.TempDir(), "x.png")); err == nil {
		t.Error("run() with an empty window should fail")
	}
	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "x.png")
	if err := run(160, 120, 1, 1, missing); err == nil {
		t.Error("run() with an unwritable output should fail")
	}
}
