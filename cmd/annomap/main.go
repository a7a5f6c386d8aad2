package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"annomap/internal/applog"
	"annomap/internal/config"
	"annomap/internal/tui"
)

type flags struct {
	config string
	xAxis  string
	yAxis  string
	dpr    float64
	log    string
	debug  bool
	image  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "annomap [file]",
		Short: "Annotate 2D canvases in the terminal",
		Long: "annomap shows points, circles, rects, lines, polylines, polygons and arrows\n" +
			"over an optional background image. Files may be GeoJSON, CSV, KML or WKT.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd, f, path)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", config.DefaultPath(), "config file")
	fl.StringVar(&f.xAxis, "x-axis", "", "x axis direction: right or left")
	fl.StringVar(&f.yAxis, "y-axis", "", "y axis direction: bottom or top")
	fl.Float64Var(&f.dpr, "dpr", 0, "device pixel ratio of the canvas")
	fl.StringVar(&f.log, "log", "", "write logs to this file")
	fl.BoolVar(&f.debug, "debug", false, "log at debug level")
	fl.StringVar(&f.image, "image", "", "background image (png, jpeg)")
	return cmd
}

func run(cmd *cobra.Command, f flags, path string) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	fl := cmd.Flags()
	if fl.Changed("x-axis") {
		cfg.View.XAxis = f.xAxis
	}
	if fl.Changed("y-axis") {
		cfg.View.YAxis = f.yAxis
	}
	if fl.Changed("dpr") {
		cfg.Canvas.PixelRatio = f.dpr
	}
	if f.debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs only go to a file.
	if f.log != "" {
		lf, err := os.OpenFile(f.log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer lf.Close()
		level, err := applog.ParseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		applog.SetLogger(applog.New(lf, level))
	}

	m, err := tui.New(tui.Options{Config: cfg, Path: path, ImagePath: f.image})
	if err != nil {
		return err
	}
	applog.Logger().Info("start", "file", path, "image", f.image, "axes", m.Map().Axes().String())
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
