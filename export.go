package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"halfplane/internal/render"
	"halfplane/internal/session"
)

// exportScene is the board as it appears, without hover or focus marks.
func exportScene(s *session.Session) render.Scene {
	scene := s.Scene()
	scene.Hover, scene.Focus = render.Target{}, render.Target{}
	return scene
}

func (m *model) exportPNG(filename string) error {
	scene := exportScene(m.session)
	if scene.Width < 1 || scene.Height < 1 {
		return errors.New("no canvas available")
	}
	return render.SavePNG(filename, render.Plan(scene), int(scene.Width), int(scene.Height))
}

func (m *model) exportVisualTXT(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	cols, rows := m.canvasSize()
	grid := render.Terminal(render.Plan(exportScene(m.session)), cols, rows)
	for _, line := range grid.Plain() {
		if _, err := fmt.Fprintln(file, line); err != nil {
			return err
		}
	}
	return nil
}

// runExport renders spells headlessly to a PNG file.
func runExport(cfg *Config, filename string, spells []string, solve bool) error {
	s := session.New(session.Options{Zoom: cfg.Zoom})
	s.Resize(float64(cfg.ExportWidth), float64(cfg.ExportHeight))
	for _, text := range spells {
		if _, err := s.Submit(text); err != nil {
			return errors.Wrapf(err, "spell %q", text)
		}
	}
	if solve {
		s.SolveAll()
	}
	return render.SavePNG(cfg.GetSavePath(filename), render.Plan(exportScene(s)), cfg.ExportWidth, cfg.ExportHeight)
}
