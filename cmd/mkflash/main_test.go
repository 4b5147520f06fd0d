//go:build !tinygo

package main

import (
	"os"
	"path/filepath"
	"testing"

	"oledctl/hal"
	"oledctl/internal/settings"
	"oledctl/ui"
)

func TestRunWritesRecord(t *testing.T) {
	out := filepath.Join(t.TempDir(), "oled.flash")
	cfg := ui.DisplayConfig{Enabled: ui.Bool(true), Screensaver: ui.Int(2)}
	if err := run(cfg, out, defaultFlashSize, defaultEraseSize); err != nil {
		t.Fatalf("run() err = %v", err)
	}

	f, err := hal.OpenFileFlash(out)
	if err != nil {
		t.Fatalf("OpenFileFlash() err = %v", err)
	}
	defer f.Close()
	if f.SizeBytes() != defaultFlashSize {
		t.Fatalf("SizeBytes() = %d, want %d", f.SizeBytes(), defaultFlashSize)
	}
	got, err := settings.Load(f)
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	if got.Screensaver == nil || *got.Screensaver != 2 {
		t.Fatalf("Load() = %+v, want screensaver 2", got)
	}
}

func TestRunEmptyConfigLeavesFlashErased(t *testing.T) {
	out := filepath.Join(t.TempDir(), "oled.flash")
	if err := run(ui.DisplayConfig{}, out, 8192, 4096); err != nil {
		t.Fatalf("run() err = %v", err)
	}
	img, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(img) != 8192 {
		t.Fatalf("image is %d bytes, want 8192", len(img))
	}
	for i, b := range img {
		if b != 0xFF {
			t.Fatalf("byte %d = %#x, want erased", i, b)
		}
	}
}

func TestBuildImageRejectsBadGeometry(t *testing.T) {
	if _, err := buildImage(ui.DisplayConfig{}, 1000, 4096); err == nil {
		t.Fatal("buildImage() err = nil, want size error")
	}
	if _, err := buildImage(ui.DisplayConfig{}, 8192, 100); err == nil {
		t.Fatal("buildImage() err = nil, want erase size error")
	}
}

func TestReadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "display.yaml")
	if err := os.WriteFile(path, []byte("Display:\n  loctr: 5\n  enabled: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := readYAML(path)
	if err != nil {
		t.Fatalf("readYAML() err = %v", err)
	}
	if cfg.LowContrast == nil || *cfg.LowContrast != 5 || cfg.Enabled == nil || *cfg.Enabled {
		t.Fatalf("readYAML() = %+v", cfg)
	}
	if cfg.Screensaver != nil {
		t.Fatalf("screensaver = %d, want unset", *cfg.Screensaver)
	}
}
