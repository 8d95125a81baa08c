/*
Blitz walks a block character around a height-map world. `blitz run` opens
the window, `blitz snapshot` renders headless frames to a PNG file.
*/
package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spaghettifunk/blitz/engine"
	"github.com/spaghettifunk/blitz/engine/config"
	"github.com/spaghettifunk/blitz/engine/core"
	"github.com/spaghettifunk/blitz/engine/platform"
	"github.com/spaghettifunk/blitz/engine/renderer/components"
	"github.com/spaghettifunk/blitz/engine/renderer/software"
	"github.com/spaghettifunk/blitz/testbed"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

type snapshotOptions struct {
	out    string
	frames int
	width  int
	height int
	fixed  bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "blitz",
		Short:         "Walk Blitz around a height-map world",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "path to the TOML configuration")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(newRunCommand(opts), newSnapshotCommand(opts))
	return root
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		core.LogError("failed to load configuration: %s", err)
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	return cfg, nil
}

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the game window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			tb, e, err := start(cfg)
			if err != nil {
				return err
			}
			defer e.Shutdown()

			p := platform.New(e)
			p.SetStatus(func() string { return tb.Status(e.Context()) })
			if err := p.Run(); err != nil {
				core.LogError("window closed with error: %s", err)
				return err
			}
			return nil
		},
	}
}

func newSnapshotCommand(opts *rootOptions) *cobra.Command {
	sopts := &snapshotOptions{}
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render frames without a window and write the last one as PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if sopts.width > 0 {
				cfg.Window.Width = sopts.width
			}
			if sopts.height > 0 {
				cfg.Window.Height = sopts.height
			}
			cfg.Assets.HotReload = false
			if err := cfg.Validate(); err != nil {
				return err
			}
			return snapshot(cfg, sopts)
		},
	}
	cmd.Flags().StringVar(&sopts.out, "out", "frame.png", "output PNG file")
	cmd.Flags().IntVar(&sopts.frames, "frames", 1, "frames to render before writing")
	cmd.Flags().IntVar(&sopts.width, "width", 0, "framebuffer width, defaults to the window width")
	cmd.Flags().IntVar(&sopts.height, "height", 0, "framebuffer height, defaults to the window height")
	cmd.Flags().BoolVar(&sopts.fixed, "fixed", false, "render from the fixed overhead camera")
	return cmd
}

func start(cfg *config.Config) (*testbed.TestGame, *engine.Engine, error) {
	tb, err := testbed.NewTestGame(cfg)
	if err != nil {
		return nil, nil, err
	}
	e, err := engine.New(tb.Game, software.New())
	if err != nil {
		return nil, nil, err
	}
	if err := e.Initialize(); err != nil {
		core.LogError("failed to initialize engine: %s", err)
		_ = e.Shutdown()
		return nil, nil, err
	}
	return tb, e, nil
}

func snapshot(cfg *config.Config, opts *snapshotOptions) error {
	if opts.frames < 1 {
		return fmt.Errorf("--frames must be at least 1, got %d", opts.frames)
	}
	_, e, err := start(cfg)
	if err != nil {
		return err
	}
	defer e.Shutdown()

	ctx := e.Context()
	ctx.Assets.Wait()
	if opts.fixed {
		ctx.Camera.SetViewMode(components.ViewModeFixed)
	}
	for i := 0; i < opts.frames; i++ {
		if err := e.Frame(1 / float64(cfg.Window.TPS)); err != nil {
			return err
		}
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, ctx.Renderer.Snapshot()); err != nil {
		return err
	}
	core.LogInfo("wrote %s (%dx%d, %d frames)", opts.out, cfg.Window.Width, cfg.Window.Height, opts.frames)
	return nil
}
