//go:build !tinygo

// Command mkflash writes a host flash image holding a "Display" settings
// record.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"oledctl/hal"
	"oledctl/internal/settings"
	"oledctl/ui"
)

const (
	defaultFlashPath = "oled.flash"
	defaultFlashSize = 64 * 1024
	defaultEraseSize = 4096
)

func main() {
	var from string
	var outPath string
	var flashSize uint
	var eraseSize uint
	var cfg ui.DisplayConfig
	flag.StringVar(&from, "from", "", "YAML file with a Display group to import.")
	flag.StringVar(&outPath, "out", defaultFlashPath, "Output flash image path.")
	flag.UintVar(&flashSize, "size", defaultFlashSize, "Flash image size (bytes).")
	flag.UintVar(&eraseSize, "erase", defaultEraseSize, "Erase block size (bytes).")
	flag.Func("enabled", "Display enabled.", func(s string) error {
		v, err := strconv.ParseBool(s)
		cfg.Enabled = ui.Bool(v)
		return err
	})
	intFlag := func(name, usage string, dst **int) {
		flag.Func(name, usage, func(s string) error {
			v, err := strconv.Atoi(s)
			*dst = ui.Int(v)
			return err
		})
	}
	intFlag("loctr", "Idle contrast (0-255).", &cfg.LowContrast)
	intFlag("hictr", "Highlight contrast (0-255).", &cfg.HighContrast)
	intFlag("screensaver", "Screensaver: 0 nightsky, 1 clock, 2 empty.", &cfg.Screensaver)
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "error: -out is required")
		os.Exit(2)
	}

	if from != "" {
		fromCfg, err := readYAML(from)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		cfg = fromCfg.Merge(cfg)
	}

	if err := run(cfg, outPath, uint32(flashSize), uint32(eraseSize)); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// readYAML loads {Display: {...}} from path.
func readYAML(path string) (ui.DisplayConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return ui.DisplayConfig{}, fmt.Errorf("open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var doc struct {
		Display ui.DisplayConfig `yaml:"Display"`
	}
	if err := yaml.NewDecoder(f).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return ui.DisplayConfig{}, fmt.Errorf("decode %q: %w", path, err)
	}
	return doc.Display, nil
}

// buildImage returns an erased flash image of size bytes, holding a
// settings record unless cfg is empty.
func buildImage(cfg ui.DisplayConfig, size, eraseSize uint32) ([]byte, error) {
	if eraseSize == 0 || eraseSize%256 != 0 {
		return nil, fmt.Errorf("flash: invalid erase size %d", eraseSize)
	}
	if size == 0 || size%eraseSize != 0 {
		return nil, fmt.Errorf("flash: size %d not multiple of erase size %d", size, eraseSize)
	}
	img := hal.NewMemFlash(size, eraseSize)
	if !cfg.Empty() {
		if err := settings.Save(img, cfg); err != nil {
			return nil, err
		}
	}
	return img.Bytes(), nil
}

func run(cfg ui.DisplayConfig, outPath string, flashSize uint32, eraseSize uint32) error {
	img, err := buildImage(cfg, flashSize, eraseSize)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, img, 0o644); err != nil {
		return fmt.Errorf("write flash image %q: %w", outPath, err)
	}
	return nil
}
