// Command facade-gen evaluates facade configurations and writes the panel
// data as JSON, a PNG figure and an interactive HTML heatmap.
//
// Usage:
//
//	facade-gen -preset all -out output/
//	facade-gen -config my_facade.json -db facades.db
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/banshee-data/parametric-facade/internal/config"
	"github.com/banshee-data/parametric-facade/internal/export"
	"github.com/banshee-data/parametric-facade/internal/facade"
	"github.com/banshee-data/parametric-facade/internal/fsutil"
	"github.com/banshee-data/parametric-facade/internal/monitoring"
	"github.com/banshee-data/parametric-facade/internal/render"
	"github.com/banshee-data/parametric-facade/internal/security"
	"github.com/banshee-data/parametric-facade/internal/store"
	"github.com/banshee-data/parametric-facade/internal/timeutil"
	"github.com/banshee-data/parametric-facade/internal/version"
)

type options struct {
	configPath     string
	preset         string
	outDir         string
	writeJSON      bool
	writePNG       bool
	writeHTML      bool
	dbPath         string
	label          string
	hideAttractors bool
	showVersion    bool
}

var errUsage = errors.New("usage")

// clock stamps runs and exported documents.
var clock timeutil.Clock = timeutil.RealClock{}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("facade-gen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.StringVar(&o.configPath, "config", "", "Path to a facade JSON configuration")
	fs.StringVar(&o.preset, "preset", "", "Example facade: single, multiple, linear or all")
	fs.StringVar(&o.outDir, "out", ".", "Output directory")
	fs.BoolVar(&o.writeJSON, "json", true, "Write <name>.json panel data")
	fs.BoolVar(&o.writePNG, "png", true, "Write <name>.png figure")
	fs.BoolVar(&o.writeHTML, "html", true, "Write <name>.html heatmap")
	fs.StringVar(&o.dbPath, "db", "", "SQLite archive to record runs in (disabled when empty)")
	fs.StringVar(&o.label, "label", "", "Override the facade name (prefix when several facades are generated)")
	fs.BoolVar(&o.hideAttractors, "hide-attractors", false, "Omit attractor markers from figures")
	fs.BoolVar(&o.showVersion, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}
	if o.configPath != "" && o.preset != "" {
		return nil, fmt.Errorf("%w: -config and -preset are mutually exclusive", errUsage)
	}
	return o, nil
}

// loadConfigs resolves the facades to generate and applies -label.
func loadConfigs(o *options) ([]*config.FacadeConfig, error) {
	var cfgs []*config.FacadeConfig
	switch {
	case o.preset != "":
		var err error
		if cfgs, err = presetConfigs(o.preset); err != nil {
			return nil, err
		}
	default:
		path := o.configPath
		if path == "" {
			var err error
			if path, err = config.FindDefaultConfig(); err != nil {
				return nil, err
			}
		}
		cfg, err := config.LoadFacadeConfig(path)
		if err != nil {
			return nil, err
		}
		cfgs = []*config.FacadeConfig{cfg}
	}

	if o.label != "" {
		for _, cfg := range cfgs {
			name := o.label
			if len(cfgs) > 1 {
				name = o.label + "_" + cfg.GetName()
			}
			cfg.Name = &name
		}
	}
	return cfgs, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, fsys fsutil.FileSystem) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if o.showVersion {
		fmt.Fprintln(stdout, version.Banner("facade-gen"))
		return nil
	}

	cfgs, err := loadConfigs(o)
	if err != nil {
		return err
	}

	var archive *store.Store
	if o.dbPath != "" {
		if archive, err = store.Open(o.dbPath); err != nil {
			return err
		}
		defer archive.Close()
	}

	for _, cfg := range cfgs {
		if err := generate(ctx, o, cfg, archive, stdout, fsys); err != nil {
			return fmt.Errorf("%s: %w", cfg.GetName(), err)
		}
	}
	return nil
}

func generate(ctx context.Context, o *options, cfg *config.FacadeConfig, archive *store.Store, stdout io.Writer, fsys fsutil.FileSystem) error {
	f, err := facade.FromConfig(cfg)
	if err != nil {
		return err
	}
	res := f.Evaluate()
	name := cfg.GetName()
	now := clock.Now()

	rec := &store.Run{Name: name, CreatedAt: now, Result: res}
	if archive != nil {
		if err := archive.RecordRun(ctx, rec); err != nil {
			return err
		}
		monitoring.Logf("facade: recorded run %s in %s", rec.ID, o.dbPath)
	} else {
		rec.Summary = facade.Summarize(res.Panels)
	}

	ro := render.OptionsFromConfig(cfg)
	ro.Title = fmt.Sprintf("Parametric facade: %s", name)
	if o.hideAttractors {
		ro.ShowAttractors = false
	}

	type artefact struct {
		enabled bool
		ext     string
		write   func(path string) error
	}
	artefacts := []artefact{
		{o.writeJSON, ".json", func(path string) error {
			return export.WriteFile(fsys, path, export.NewDocument(res, name, rec.ID, now))
		}},
		{o.writePNG, ".png", func(path string) error { return render.SavePNG(fsys, path, res, ro) }},
		{o.writeHTML, ".html", func(path string) error { return render.SaveHTML(fsys, path, res, ro) }},
	}
	for _, a := range artefacts {
		if !a.enabled {
			continue
		}
		path, err := security.OutputPath(o.outDir, name, a.ext)
		if err != nil {
			return err
		}
		if err := a.write(path); err != nil {
			return err
		}
	}

	printSummary(stdout, name, res, rec.Summary)
	return nil
}

func printSummary(w io.Writer, name string, res facade.Result, s facade.Summary) {
	fmt.Fprintf(w, "%s: %dx%d panels (%d), %d attractors, falloff %s\n",
		name, res.Grid.Cols, res.Grid.Rows, s.PanelCount, len(res.Attractors), res.FalloffName)
	fmt.Fprintf(w, "  influence mean %.3f min %.3f max %.3f, %d/%d panels affected\n",
		s.MeanInfluence, s.MinInfluence, s.MaxInfluence, s.AffectedPanels, s.PanelCount)
}

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, fsutil.OSFileSystem{})
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	case errors.Is(err, errUsage):
		fmt.Fprintf(os.Stderr, "facade-gen: %v\n", err)
		os.Exit(2)
	default:
		log.Fatalf("facade-gen: %v", err)
	}
}
