//go:build !tinygo

// Package netprobe checks connectivity with ICMP echo and reports the result
// to the LED host.
package netprobe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-ping/ping"
)

// Sink receives probe results.
type Sink interface {
	SetLink(up bool, rssi int, latency time.Duration)
}

// PingFunc sends one echo to host and returns the round trip.
type PingFunc func(ctx context.Context, host string, timeout time.Duration) (time.Duration, error)

// Config controls a Prober.
type Config struct {
	Target   string
	Interval time.Duration
	Timeout  time.Duration
	// Privileged uses raw ICMP sockets; otherwise unprivileged UDP pings.
	Privileged bool
	// Ping overrides the go-ping implementation.
	Ping PingFunc
	Log  *slog.Logger
}

var errNoReply = errors.New("no echo reply")

// Prober pings Target every Interval.
type Prober struct {
	cfg Config
}

func New(cfg Config) *Prober {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	if cfg.Ping == nil {
		cfg.Ping = ICMP(cfg.Privileged)
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	cfg.Log = cfg.Log.With("component", "netprobe")
	return &Prober{cfg: cfg}
}

// Probe runs one check and reports it to s.
func (p *Prober) Probe(ctx context.Context, s Sink) error {
	rtt, err := p.cfg.Ping(ctx, p.cfg.Target, p.cfg.Timeout)
	if err != nil {
		s.SetLink(false, 0, 0)
		return fmt.Errorf("ping %s: %w", p.cfg.Target, err)
	}
	s.SetLink(true, 0, rtt)
	return nil
}

// Run probes until ctx is done. Link changes are logged once.
func (p *Prober) Run(ctx context.Context, s Sink) error {
	t := time.NewTicker(p.cfg.Interval)
	defer t.Stop()
	up := false
	first := true
	for {
		err := p.Probe(ctx, s)
		if now := err == nil; now != up || first {
			if err != nil {
				p.cfg.Log.Info("link down", "target", p.cfg.Target, "err", err)
			} else {
				p.cfg.Log.Info("link up", "target", p.cfg.Target)
			}
			up, first = now, false
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// ICMP returns a PingFunc backed by go-ping.
func ICMP(privileged bool) PingFunc {
	return func(ctx context.Context, host string, timeout time.Duration) (time.Duration, error) {
		pinger, err := ping.NewPinger(host)
		if err != nil {
			return 0, err
		}
		pinger.SetPrivileged(privileged)
		pinger.Count = 1
		pinger.Timeout = timeout

		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-ctx.Done():
				pinger.Stop()
			case <-done:
			}
		}()

		if err := pinger.Run(); err != nil {
			return 0, err
		}
		stats := pinger.Statistics()
		if stats.PacketsRecv == 0 {
			return 0, errNoReply
		}
		return stats.AvgRtt, nil
	}
}
