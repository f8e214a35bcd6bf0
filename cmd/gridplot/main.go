// Command gridplot writes orthographic projections of a grid wireframe to PNG, SVG or HTML files,
// one per plane, rendering them concurrently.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/gridview/common"
	"github.com/Carmen-Shannon/gridview/engine/grid"
	"github.com/Carmen-Shannon/gridview/engine/grid_plot"
	"github.com/Carmen-Shannon/gridview/engine/settings"
	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/plot/vg"
)

type options struct {
	job     exportJob
	workers int
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	common.SetLogger(logger)

	paths, err := exportAll(opts.job, opts.workers)
	for _, p := range paths {
		fmt.Println(p)
	}
	if err != nil {
		logger.Error("gridplot failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	fs := flag.NewFlagSet("gridplot", flag.ContinueOnError)
	fs.SetOutput(output)

	dim := fs.String("dim", "8,4,4", "cells along x,y,z")
	h := fs.Float64("h", 1, "cell edge length")
	pos := fs.String("pos", "0,0,0", "min corner x,y,z")
	mode := fs.String("mode", settings.GridModeAllFaceCells.String(), "grid mode: hidden, min_faces or all_faces")
	selected := fs.Bool("selected", false, "draw with the selection highlight")
	out := fs.String("out", ".", "output directory")
	format := fs.String("format", "png", "output format: png, svg or html")
	size := fs.Float64("size", 6, "image edge length in inches")
	projections := fs.String("proj", "xy,xz,zy", "comma-separated projections")
	workers := fs.Int("workers", runtime.NumCPU(), "concurrent renders")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	d, err := parseTriple(*dim, strconv.Atoi)
	if err != nil {
		return nil, fmt.Errorf("-dim: %w", err)
	}
	p, err := parseTriple(*pos, func(s string) (float32, error) {
		f, err := strconv.ParseFloat(s, 32)
		return float32(f), err
	})
	if err != nil {
		return nil, fmt.Errorf("-pos: %w", err)
	}
	g := grid.New(d, float32(*h), mgl32.Vec3(p))
	if err := g.Validate(); err != nil {
		return nil, err
	}

	m, err := settings.ParseGridMode(*mode)
	if err != nil {
		return nil, fmt.Errorf("-mode: %w", err)
	}

	var projs []grid_plot.Projection
	for _, name := range strings.Split(*projections, ",") {
		pr, err := grid_plot.ParseProjection(name)
		if err != nil {
			return nil, fmt.Errorf("-proj: %w", err)
		}
		projs = append(projs, pr)
	}

	ext := "." + strings.ToLower(strings.TrimPrefix(*format, "."))
	if ext != ".png" && ext != ".svg" && ext != ".html" {
		return nil, fmt.Errorf("-format: %q: %w", *format, grid_plot.ErrUnsupportedFormat)
	}

	return &options{
		job: exportJob{
			grid:        g,
			mode:        m,
			selected:    *selected,
			dir:         *out,
			ext:         ext,
			size:        vg.Length(*size) * vg.Inch,
			projections: projs,
		},
		workers: *workers,
	}, nil
}

func parseTriple[T any](s string, parse func(string) (T, error)) ([3]T, error) {
	var out [3]T
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("%q: expected 3 comma-separated values", s)
	}
	for i, p := range parts {
		v, err := parse(strings.TrimSpace(p))
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}
