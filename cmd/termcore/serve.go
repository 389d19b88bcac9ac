package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vibetunnel/termcore/internal/cellrender"
	"github.com/vibetunnel/termcore/internal/config"
	"github.com/vibetunnel/termcore/internal/debugbridge"
	"github.com/vibetunnel/termcore/internal/telemetry"
)

// demoCols/demoRows size the synthetic screen `serve` drives its render
// loop against. Real terminal dimensions are an external collaborator this
// standalone debug-bridge demo doesn't own.
const (
	demoCols = 80
	demoRows = 24
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the debug bridge standalone, loading tunables from a config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file; defaults are used when omitted")
	return cmd
}

func runServe(configPath string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if configPath != "" {
		watcher, err := config.WatchFile(configPath)
		if err != nil {
			return err
		}
		defer watcher.Close()
		go func() {
			for {
				select {
				case updated, ok := <-watcher.Updates():
					if !ok {
						return
					}
					cfg = updated
					telemetry.L().Info("config reloaded")
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	atl := &asciiAtlas{cellWidth: 8, cellHeight: 16}
	rebuilder := cellrender.New(asciiShaper{}, atl, atl, cellrender.Palette{}, cfg, demoRows)

	bridge := debugbridge.New(cfg.DebugBridge, rebuilder)
	defer bridge.Close()

	loop := cellrender.NewRenderLoop(rebuilder, newClockSource(demoCols, demoRows), &bridgeFrameObserver{bridge: bridge}, 200*time.Millisecond)
	go loop.Run(ctx)

	telemetry.L().Info("debug bridge starting", zap.String("addr", cfg.DebugBridge.ListenAddr))
	return bridge.ListenAndServe(ctx)
}
