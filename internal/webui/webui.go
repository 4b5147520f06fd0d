//go:build !tinygo

// Package webui serves the display settings and a live preview over HTTP.
package webui

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"log/slog"
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/image/draw"

	"oledctl/hal"
	"oledctl/internal/mailbox"
	"oledctl/ui"
)

// MaxScale bounds the preview zoom.
const MaxScale = 16

// Latest holds what the display loop last published. It is safe for
// concurrent use.
type Latest struct {
	mu    sync.RWMutex
	state ui.State
	cfg   ui.DisplayConfig
}

// Publish is called by the display loop.
func (l *Latest) Publish(st ui.State, cfg ui.DisplayConfig) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = st
	l.cfg = cfg
}

func (l *Latest) Load() (ui.State, ui.DisplayConfig) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state, l.cfg
}

// Options configure a Server.
type Options struct {
	Mailbox *mailbox.Mailbox
	Latest  *Latest
	// Preview is optional; without it /frame.png answers 503.
	Preview hal.Previewer
	Width   int
	Height  int
	Log     *slog.Logger
}

// Server is the HTTP front end. Handlers never touch the controller; writes
// go through the mailbox.
type Server struct {
	app  *fiber.App
	opts Options
	log  *slog.Logger
}

// configBody accepts both {"Display": {...}} and a bare group.
type configBody struct {
	Display *ui.DisplayConfig `json:"Display"`
	ui.DisplayConfig
}

func New(opts Options) *Server {
	if opts.Width == 0 || opts.Height == 0 {
		opts.Width, opts.Height = hal.PanelWidth, hal.PanelHeight
	}
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		app:  fiber.New(fiber.Config{DisableStartupMessage: true}),
		opts: opts,
		log:  log.With("component", "webui"),
	}
	s.app.Get("/api/display", s.getDisplay)
	s.app.Post("/api/display", s.postDisplay)
	s.app.Get("/api/state", s.getState)
	s.app.Post("/api/button/:id", s.postButton)
	s.app.Get("/frame.png", s.getFrame)
	return s
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until ctx is done.
func (s *Server) Listen(ctx context.Context, addr string) error {
	go func() {
		<-ctx.Done()
		_ = s.app.Shutdown()
	}()
	s.log.Info("listening", "addr", addr)
	return s.app.Listen(addr)
}

func (s *Server) getDisplay(c *fiber.Ctx) error {
	_, cfg := s.opts.Latest.Load()
	return c.JSON(fiber.Map{ui.ConfigGroup: cfg})
}

func (s *Server) postDisplay(c *fiber.Ctx) error {
	var body configBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid JSON")
	}
	cfg := body.DisplayConfig
	if body.Display != nil {
		cfg = *body.Display
	}
	if cfg.Empty() {
		return c.Status(fiber.StatusBadRequest).SendString("No settings")
	}
	if !s.opts.Mailbox.TrySend(mailbox.Message{Kind: mailbox.KindConfig, Config: cfg}) {
		return c.Status(fiber.StatusServiceUnavailable).SendString("Busy")
	}
	if !s.opts.Mailbox.TrySend(mailbox.Message{Kind: mailbox.KindSave}) {
		s.log.Warn("settings not saved, mailbox full")
	}
	return c.Status(fiber.StatusAccepted).SendString("Accepted")
}

func (s *Server) getState(c *fiber.Ctx) error {
	st, _ := s.opts.Latest.Load()
	return c.JSON(st)
}

func (s *Server) postButton(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 0 || id > 1 {
		return c.Status(fiber.StatusBadRequest).SendString("Unknown button")
	}
	if !s.opts.Mailbox.TrySend(mailbox.Message{Kind: mailbox.KindPress, Button: id}) {
		return c.Status(fiber.StatusServiceUnavailable).SendString("Busy")
	}
	return c.Status(fiber.StatusAccepted).SendString("Accepted")
}

func (s *Server) getFrame(c *fiber.Ctx) error {
	if s.opts.Preview == nil {
		return c.Status(fiber.StatusServiceUnavailable).SendString("No frame available")
	}
	scale := c.QueryInt("scale", 4)
	if scale < 1 || scale > MaxScale {
		return c.Status(fiber.StatusBadRequest).SendString("Bad scale")
	}

	src := image.NewGray(image.Rect(0, 0, s.opts.Width, s.opts.Height))
	s.opts.Preview.Preview(src)
	dst := image.NewGray(image.Rect(0, 0, s.opts.Width*scale, s.opts.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to encode image")
	}
	c.Set("Content-Type", "image/png")
	c.Set("Content-Length", strconv.Itoa(buf.Len()))
	return c.Send(buf.Bytes())
}
