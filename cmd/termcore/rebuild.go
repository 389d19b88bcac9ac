package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vibetunnel/termcore/internal/cellrender"
	"github.com/vibetunnel/termcore/internal/config"
	"github.com/vibetunnel/termcore/internal/screen"
)

// rebuildFixture is the JSON document `termcore rebuild` reads: a screen
// snapshot plus the optional selection and palette that shape a frame.
type rebuildFixture struct {
	Snapshot   screen.Snapshot    `json:"snapshot"`
	Selection  *screen.Selection  `json:"selection,omitempty"`
	DrawCursor bool               `json:"draw_cursor"`
	Palette    cellrender.Palette `json:"palette"`
}

type rebuildResult struct {
	BGCells []cellrender.GPUCell `json:"bg_cells"`
	FGCells []cellrender.GPUCell `json:"fg_cells"`
}

func newRebuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rebuild <snapshot.json>",
		Short: "Rebuild a screen snapshot into GPU cell instance records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRebuild(args[0])
		},
	}
	return cmd
}

func runRebuild(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fixture rebuildFixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	snap := fixture.Snapshot
	atl := &asciiAtlas{cellWidth: 8, cellHeight: 16}
	cfg := config.Default()
	r := cellrender.New(asciiShaper{}, atl, atl, fixture.Palette, cfg, snap.Rows)
	r.ResetFontMetrics()

	if err := r.Rebuild(cellrender.RebuildInput{
		ActiveScreen: snap.Type,
		Selection:    fixture.Selection,
		Snapshot:     &snap,
		DrawCursor:   fixture.DrawCursor,
	}); err != nil {
		return err
	}

	out, err := json.MarshalIndent(rebuildResult{
		BGCells: r.CellsBG(),
		FGCells: r.Cells(),
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
