package settings

import (
	"errors"
	"testing"

	"oledctl/hal"
	"oledctl/ui"
)

func TestLoadEmptyFlash(t *testing.T) {
	f := hal.NewMemFlash(8192, 4096)
	if _, err := Load(f); !errors.Is(err, ErrNoRecord) {
		t.Fatalf("Load() err = %v, want ErrNoRecord", err)
	}
}

func TestSaveThenLoad(t *testing.T) {
	f := hal.NewMemFlash(8192, 4096)
	cfg := ui.DisplayConfig{Enabled: ui.Bool(true), LowContrast: ui.Int(10), HighContrast: ui.Int(90), Screensaver: ui.Int(0)}
	if err := Save(f, cfg); err != nil {
		t.Fatalf("Save() err = %v", err)
	}
	// Overwrite with different values; Save must erase first.
	cfg.HighContrast = ui.Int(200)
	if err := Save(f, cfg); err != nil {
		t.Fatalf("second Save() err = %v", err)
	}

	got, err := Load(f)
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	if !*got.Enabled || *got.LowContrast != 10 || *got.HighContrast != 200 || *got.Screensaver != 0 {
		t.Fatalf("Load() = %+v", got)
	}
}

func TestLoadKeepsMissingFieldsNil(t *testing.T) {
	f := hal.NewMemFlash(8192, 4096)
	if err := Save(f, ui.DisplayConfig{Screensaver: ui.Int(2)}); err != nil {
		t.Fatalf("Save() err = %v", err)
	}
	got, err := Load(f)
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	if got.Enabled != nil || got.LowContrast != nil || got.HighContrast != nil {
		t.Fatalf("Load() = %+v, want only screensaver set", got)
	}
}

func TestLoadDetectsCorruption(t *testing.T) {
	f := hal.NewMemFlash(8192, 4096)
	if err := Save(f, ui.DisplayConfig{Enabled: ui.Bool(true)}); err != nil {
		t.Fatalf("Save() err = %v", err)
	}
	// Clearing bits is always a legal flash write.
	if _, err := f.WriteAt([]byte{0x00}, headerSize+2); err != nil {
		t.Fatalf("WriteAt() err = %v", err)
	}
	if _, err := Load(f); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Load() err = %v, want ErrCorrupt", err)
	}

	g := hal.NewMemFlash(8192, 4096)
	g.WriteAt([]byte("JUNK"), 0)
	if _, err := Load(g); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Load() err = %v, want ErrCorrupt", err)
	}
}

func TestErase(t *testing.T) {
	f := hal.NewMemFlash(8192, 4096)
	if err := Save(f, ui.DisplayConfig{Enabled: ui.Bool(false)}); err != nil {
		t.Fatalf("Save() err = %v", err)
	}
	if err := Erase(f); err != nil {
		t.Fatalf("Erase() err = %v", err)
	}
	if _, err := Load(f); !errors.Is(err, ErrNoRecord) {
		t.Fatalf("Load() err = %v, want ErrNoRecord", err)
	}
}

func TestSaveTooSmallFlash(t *testing.T) {
	f := hal.NewMemFlash(0, 4096)
	if err := Save(f, ui.DisplayConfig{}); !errors.Is(err, hal.ErrFlashRange) {
		t.Fatalf("Save() err = %v, want ErrFlashRange", err)
	}
}
