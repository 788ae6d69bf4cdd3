package main

import (
	"bytes"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/backend"
	"github.com/gogpu/sketch/backend/svg"
	"github.com/gogpu/sketch/config"
	"github.com/gogpu/sketch/element"
)

const (
	demoWidth  = 320
	demoHeight = 200
)

type server struct {
	cfg config.File
	log *slog.Logger
}

func newApp(cfg config.File, log *slog.Logger) *fiber.App {
	s := &server{cfg: cfg, log: log}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
		AppName:      "sketchd",
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}?${queryParams}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/demo.svg", s.demoSVG)
	app.Get("/demo.png", s.demoPNG)

	return app
}

// sketchFor builds the demo scene on a Sketch that renders with name, or
// with the configured backend when name is empty.
func (s *server) sketchFor(name string) (*sketch.Sketch, error) {
	cfg := s.cfg.RenderConfig()
	if name != "" {
		cfg.Backend = name
	}
	sk, err := sketch.New(sketch.WithConfig(cfg), sketch.WithLogger(s.log))
	if err != nil {
		return nil, err
	}
	if err := drawDemo(sk); err != nil {
		return nil, err
	}
	return sk, nil
}

func drawDemo(sk *sketch.Sketch) error {
	if _, err := sk.Low.R(0, 0, demoWidth, demoHeight, "#f5f5f5", "", 0); err != nil {
		return err
	}
	if _, err := sk.Mid.Circle(80, 100, 50, element.Options{Fill: "#3498db", Stroke: "#1f5f8b", StrokeWidth: element.Ptr(3.0)}); err != nil {
		return err
	}
	if _, err := sk.Mid.Rect(150, 50, 120, 70, element.Options{
		Fill:         "tomato",
		CornerRadius: 12,
		Opacity:      element.Ptr(0.8),
	}); err != nil {
		return err
	}
	if _, err := sk.Mid.Polygon([]element.Point{
		element.Pt(180, 180), element.Pt(230, 130), element.Pt(280, 180),
	}, element.Options{Fill: "rgb(46, 204, 113)"}); err != nil {
		return err
	}
	if _, err := sk.Mid.Ellipse(240, 85, 30, 14, element.Options{
		Fill:      "gold",
		Transform: element.Rotated(20),
	}); err != nil {
		return err
	}
	if _, err := sk.Mid.Line(20, 190, 140, 170, element.Options{Stroke: "#333333", StrokeWidth: element.Ptr(2.0)}); err != nil {
		return err
	}
	_, err := sk.Low.T("sketch", 20, 30, 18, "#333333")
	return err
}

func (s *server) demoSVG(c fiber.Ctx) error {
	sk, err := s.sketchFor(backend.NameSVG)
	if err != nil {
		return s.fail(c, fiber.StatusInternalServerError, err)
	}
	doc := svg.NewDocument(demoWidth, demoHeight)
	if _, err := sk.Render(doc); err != nil {
		return s.fail(c, fiber.StatusInternalServerError, err)
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(doc.Bytes())
}

func (s *server) demoPNG(c fiber.Ctx) error {
	sk, err := s.sketchFor(c.Query("backend"))
	if err != nil {
		return s.fail(c, fiber.StatusInternalServerError, err)
	}
	target := backend.NewPixmapTarget(demoWidth, demoHeight)
	if _, err := sk.Render(target); err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, backend.ErrUnsupportedTarget) || errors.Is(err, backend.ErrUnknownBackend) {
			status = fiber.StatusBadRequest
		}
		return s.fail(c, status, err)
	}
	for _, w := range sk.Warnings() {
		s.log.Warn("sketchd: render warning", "message", w.Message)
	}

	var buf bytes.Buffer
	if err := target.EncodePNG(&buf); err != nil {
		return s.fail(c, fiber.StatusInternalServerError, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set("X-Sketch-Backend", sk.Renderer().SelectBackend(sk.Scene()))
	return c.Send(buf.Bytes())
}

func (s *server) fail(c fiber.Ctx, status int, err error) error {
	s.log.Error("sketchd: request failed", "path", c.Path(), "error", err)
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
