package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/gridview/engine/grid"
	"github.com/Carmen-Shannon/gridview/engine/renderer"
	"github.com/Carmen-Shannon/gridview/engine/settings"
	"github.com/go-gl/mathgl/mgl32"
)

type options struct {
	dim      [3]int
	h        float32
	pos      mgl32.Vec3
	backend  renderer.RendererBackendType
	config   string
	profile  bool
	vsync    bool
	logLevel slog.Level

	// set records which flags were given explicitly and override the config file.
	set map[string]bool
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	fs := flag.NewFlagSet("gridview", flag.ContinueOnError)
	fs.SetOutput(output)

	dim := fs.String("dim", "8,4,4", "cells along x,y,z")
	h := fs.Float64("h", 1, "cell edge length")
	pos := fs.String("pos", "0,0,0", "min corner x,y,z")
	backend := fs.String("backend", "wgpu", "graphics backend: wgpu or gl")
	config := fs.String("config", "", "display settings JSON file")
	profile := fs.Bool("profile", false, "log frame statistics every second")
	vsync := fs.Bool("vsync", true, "wait for vertical blank when presenting")
	logLevel := fs.String("log-level", "info", "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	o := &options{
		h:       float32(*h),
		config:  *config,
		profile: *profile,
		vsync:   *vsync,
		set:     make(map[string]bool),
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	var err error
	if o.dim, err = parseInts(*dim); err != nil {
		return nil, fmt.Errorf("-dim: %w", err)
	}
	v, err := parseFloats(*pos)
	if err != nil {
		return nil, fmt.Errorf("-pos: %w", err)
	}
	o.pos = mgl32.Vec3(v)

	switch strings.ToLower(*backend) {
	case "wgpu":
		o.backend = renderer.BackendTypeWGPU
	case "gl":
		o.backend = renderer.BackendTypeGL
	default:
		return nil, fmt.Errorf("-backend: unknown backend %q", *backend)
	}

	if err := o.logLevel.UnmarshalText([]byte(*logLevel)); err != nil {
		return nil, fmt.Errorf("-log-level: %w", err)
	}
	return o, nil
}

// resolveGrid merges the config file grid over the flag defaults, then applies explicit flags.
func (o *options) resolveGrid(cfg *settings.DisplayConfig) (grid.Grid, error) {
	g := grid.New(o.dim, o.h, o.pos)
	if cfg != nil {
		g = cfg.Grid.Apply(g)
	}
	if o.set["dim"] {
		g.Dim = o.dim
	}
	if o.set["h"] {
		g.H = o.h
	}
	if o.set["pos"] {
		g.Pos = o.pos
	}
	if err := g.Validate(); err != nil {
		return grid.Grid{}, err
	}
	return g, nil
}

var errComponents = errors.New("expected 3 comma-separated values")

func splitTriple(s string) ([]string, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%q: %w", s, errComponents)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

func parseInts(s string) ([3]int, error) {
	var out [3]int
	parts, err := splitTriple(s)
	if err != nil {
		return out, err
	}
	for i, p := range parts {
		if out[i], err = strconv.Atoi(p); err != nil {
			return out, err
		}
	}
	return out, nil
}

func parseFloats(s string) ([3]float32, error) {
	var out [3]float32
	parts, err := splitTriple(s)
	if err != nil {
		return out, err
	}
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 32)
		if err != nil {
			return out, err
		}
		out[i] = float32(f)
	}
	return out, nil
}
