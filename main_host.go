//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"oledctl/app"
	"oledctl/hal"
	"oledctl/internal/ffyaml"
	"oledctl/internal/netprobe"
	"oledctl/internal/webui"
	"oledctl/ui"
)

type rootFlags struct {
	flashPath   string
	clockOffset uint
	logLevel    string
	httpAddr    string
	pingTarget  string
	pingEvery   time.Duration
	privileged  bool
	ssid        string
	ip          string
	leds        int
	stripBusy   time.Duration
	display     ui.DisplayConfig
}

func (r *rootFlags) register(fs *flag.FlagSet) {
	fs.String("config", "", "YAML config file (optional)")
	fs.StringVar(&r.flashPath, "flash-path", "", "File backing settings flash (default oled.flash)")
	fs.UintVar(&r.clockOffset, "clock-offset", 0, "Start value of the millisecond counter")
	fs.StringVar(&r.logLevel, "log-level", "info", "debug, info, warn or error")
	fs.StringVar(&r.httpAddr, "http", "", "Serve the settings API and preview on this address")
	fs.StringVar(&r.pingTarget, "ping", "", "Probe connectivity by pinging this host")
	fs.DurationVar(&r.pingEvery, "ping-every", 10*time.Second, "Probe interval")
	fs.BoolVar(&r.privileged, "ping-privileged", false, "Use raw ICMP sockets")
	fs.StringVar(&r.ssid, "ssid", "home", "SSID shown on the WiFi screen")
	fs.StringVar(&r.ip, "ip", "192.168.1.50", "Address shown on the WiFi screen")
	fs.IntVar(&r.leds, "leds", 30, "LED count shown on the tech screen")
	fs.DurationVar(&r.stripBusy, "strip-busy", 0, "Simulated strip write time per 25ms frame")
	fs.Func("display-enabled", "Override the stored enabled setting", func(s string) error {
		v, err := strconv.ParseBool(s)
		r.display.Enabled = ui.Bool(v)
		return err
	})
	intOverride := func(name, usage string, dst **int) {
		fs.Func(name, usage, func(s string) error {
			v, err := strconv.Atoi(s)
			*dst = ui.Int(v)
			return err
		})
	}
	intOverride("display-loctr", "Override the stored idle contrast", &r.display.LowContrast)
	intOverride("display-hictr", "Override the stored highlight contrast", &r.display.HighContrast)
	intOverride("display-screensaver", "Override the stored screensaver (0 nightsky, 1 clock, 2 empty)", &r.display.Screensaver)
}

func (r *rootFlags) host() hal.HostConfig {
	return hal.HostConfig{FlashPath: r.flashPath, ClockOffset: uint32(r.clockOffset)}
}

func (r *rootFlags) level() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(r.logLevel))
	return l, err
}

// newApp builds the app and starts the side services for ctx.
func (r *rootFlags) newApp(ctx context.Context) (func(hal.HAL) func() error, error) {
	lvl, err := r.level()
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	latest := &webui.Latest{}
	cfg := app.Config{
		Display:   r.display,
		Publisher: latest,
		LogLevel:  lvl,
	}
	cfg.Host.SSID = r.ssid
	cfg.Host.IP = r.ip
	cfg.Host.LEDs = r.leds
	cfg.Host.StripBusy = r.stripBusy

	return app.Func(cfg, func(a *app.App) {
		log := a.Logger()
		if r.pingTarget != "" {
			p := netprobe.New(netprobe.Config{
				Target:     r.pingTarget,
				Interval:   r.pingEvery,
				Privileged: r.privileged,
				Log:        log,
			})
			go p.Run(ctx, a.Device())
		} else {
			a.Device().SetLink(true, -55, 0)
		}
		if r.httpAddr != "" {
			prev, _ := a.HAL().Panel().(hal.Previewer)
			w, h := a.HAL().Panel().Size()
			srv := webui.New(webui.Options{
				Mailbox: a.Mailbox(),
				Latest:  latest,
				Preview: prev,
				Width:   int(w),
				Height:  int(h),
				Log:     log,
			})
			go func() {
				if err := srv.Listen(ctx, r.httpAddr); err != nil {
					log.Error("http server stopped", "err", err)
				}
			}()
		}
	}), nil
}

func main() {
	var root rootFlags
	opts := []ff.Option{
		ff.WithEnvVarPrefix("OLED"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ffyaml.Parser),
		ff.WithAllowMissingConfigFile(true),
	}
	rootFS := flag.NewFlagSet("oledctl", flag.ExitOnError)
	root.register(rootFS)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	windowFS := flag.NewFlagSet("oledctl window", flag.ExitOnError)
	scale := windowFS.Int("scale", 8, "Window pixels per panel pixel")
	windowCmd := &ffcli.Command{
		Name:       "window",
		ShortUsage: "oledctl [flags] window [-scale N]",
		ShortHelp:  "Preview the panel in a desktop window",
		FlagSet:    windowFS,
		Options:    []ff.Option{ff.WithEnvVarPrefix("OLED")},
		Exec: func(ctx context.Context, _ []string) error {
			newApp, err := root.newApp(ctx)
			if err != nil {
				return err
			}
			return hal.RunWindow(newApp, hal.WindowConfig{Host: root.host(), Scale: *scale})
		},
	}

	termFS := flag.NewFlagSet("oledctl terminal", flag.ExitOnError)
	frame := termFS.Duration("frame", 30*time.Millisecond, "Loop and redraw interval")
	termCmd := &ffcli.Command{
		Name:       "terminal",
		ShortUsage: "oledctl [flags] terminal",
		ShortHelp:  "Preview the panel in the terminal",
		FlagSet:    termFS,
		Options:    []ff.Option{ff.WithEnvVarPrefix("OLED")},
		Exec: func(ctx context.Context, _ []string) error {
			newApp, err := root.newApp(ctx)
			if err != nil {
				return err
			}
			return hal.RunTerminal(ctx, newApp, hal.TerminalConfig{Host: root.host(), Frame: *frame})
		},
	}

	var headless hal.HeadlessConfig
	headlessFS := flag.NewFlagSet("oledctl headless", flag.ExitOnError)
	headlessFS.IntVar(&headless.Hz, "hz", 60, "Tick rate")
	headlessFS.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks (0 = run forever)")
	headlessFS.BoolVar(&headless.Fast, "fast", false, "Step simulated time as fast as possible")
	autoPress := headlessFS.Bool("auto-press", false, "Press the buttons periodically")
	headlessCmd := &ffcli.Command{
		Name:       "headless",
		ShortUsage: "oledctl [flags] headless [-hz N] [-ticks N] [-fast]",
		ShortHelp:  "Run without a preview",
		FlagSet:    headlessFS,
		Options:    []ff.Option{ff.WithEnvVarPrefix("OLED")},
		Exec: func(ctx context.Context, _ []string) error {
			newApp, err := root.newApp(ctx)
			if err != nil {
				return err
			}
			headless.Host = root.host()
			headless.Host.AutoPress = *autoPress
			return hal.RunHeadless(ctx, newApp, headless)
		},
	}

	sbc := hal.DefaultSBCConfig()
	sbcFS := flag.NewFlagSet("oledctl sbc", flag.ExitOnError)
	sbcFS.StringVar(&sbc.Bus, "i2c", sbc.Bus, "I2C bus name (empty = first bus)")
	sbcFS.StringVar(&sbc.MenuPin, "menu-pin", sbc.MenuPin, "GPIO of the menu button (active low)")
	sbcFS.StringVar(&sbc.ActionPin, "action-pin", sbc.ActionPin, "GPIO of the action button (active low)")
	sbcFS.StringVar(&sbc.InputDevice, "input", "", "evdev device path for the buttons")
	sbcFS.StringVar(&sbc.InputName, "input-name", "", "evdev device name for the buttons")
	sbcFS.DurationVar(&sbc.Interval, "interval", sbc.Interval, "Loop interval")
	sbcCmd := &ffcli.Command{
		Name:       "sbc",
		ShortUsage: "oledctl [flags] sbc [-i2c BUS] [-menu-pin GPIO] [-action-pin GPIO]",
		ShortHelp:  "Drive a real SSD1306 on a Linux board",
		FlagSet:    sbcFS,
		Options:    []ff.Option{ff.WithEnvVarPrefix("OLED")},
		Exec: func(ctx context.Context, _ []string) error {
			newApp, err := root.newApp(ctx)
			if err != nil {
				return err
			}
			sbc.Host = root.host()
			return hal.RunSBC(ctx, newApp, sbc)
		},
	}

	rootCmd := &ffcli.Command{
		ShortUsage:  "oledctl [flags] <window|terminal|headless|sbc>",
		ShortHelp:   "64x48 OLED status display for an LED controller",
		LongHelp:    "Buttons:\n  a / left    menu button\n  b / right   action button",
		FlagSet:     rootFS,
		Options:     opts,
		Subcommands: []*ffcli.Command{windowCmd, termCmd, headlessCmd, sbcCmd},
		Exec: func(ctx context.Context, args []string) error {
			return windowCmd.Exec(ctx, args)
		},
	}

	if err := rootCmd.ParseAndRun(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) || errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
