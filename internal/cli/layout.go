package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardfan/internal/server"
	"github.com/matzehuels/cardfan/pkg/cache"
	"github.com/matzehuels/cardfan/pkg/fan"
)

const layoutCacheTTL = 24 * time.Hour

// layoutCommand prints the transforms computed for a fan of N cards.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		count         int
		width, height float64
		asJSON        bool
		noCache       bool
		lifted        []int
	)
	over := fan.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the computed layout for N cards",
		Long: `Print the computed layout for N cards.

Each row is one card: the lower-left corner of its rotated bounding box and
its rotation. Geometry flags override the configuration file. Results are
cached locally.`,
		Example: `  cardfan layout --count 7
  cardfan layout -n 12 --radius 600 --angle 90 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fc := cfg.Fan
			flags := cmd.Flags()
			if flags.Changed("spacing") {
				fc.Spacing = over.Spacing
			}
			if flags.Changed("radius") {
				fc.MinRadius = over.MinRadius
			}
			if flags.Changed("angle") {
				fc.MaxAngle = over.MaxAngle
			}
			if flags.Changed("lift") {
				fc.Lift = over.Lift
			}
			if flags.Changed("true-center") {
				fc.TrueCenter = over.TrueCenter
			}
			if flags.Changed("lifted") {
				fc.Lifted = lifted
			}
			if !flags.Changed("width") {
				width = float64(cfg.Demo.Width)
			}
			if !flags.Changed("height") {
				height = float64(cfg.Demo.Height)
			}

			resp, hit, err := c.computeLayout(cmd.Context(), c.newCache(noCache), server.LayoutRequest{Count: count, Width: width, Height: height}, fc)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			renderLayout(out, resp, hit)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 5, "number of cards")
	cmd.Flags().Float64Var(&width, "width", 0, "container width (default: demo.width)")
	cmd.Flags().Float64Var(&height, "height", 0, "container height (default: demo.height)")
	cmd.Flags().Float64Var(&over.Spacing, "spacing", over.Spacing, "distance between adjacent cards")
	cmd.Flags().Float64Var(&over.MinRadius, "radius", over.MinRadius, "minimum arc radius; <= 0 lays cards on a line")
	cmd.Flags().Float64Var(&over.MaxAngle, "angle", over.MaxAngle, "maximum arc angle in degrees")
	cmd.Flags().Float64Var(&over.Lift, "lift", over.Lift, "offset of lifted cards")
	cmd.Flags().BoolVar(&over.TrueCenter, "true-center", false, "center the arc's bounding box")
	cmd.Flags().IntSliceVar(&lifted, "lifted", nil, "indices of lifted cards")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// computeLayout answers req from the cache when possible.
func (c *CLI) computeLayout(ctx context.Context, store cache.Cache, req server.LayoutRequest, fc fan.Config) (server.LayoutResponse, bool, error) {
	if err := fc.Validate(); err != nil {
		return server.LayoutResponse{}, false, err
	}
	key := cache.Key("layout", req.Count, fc.Layout(req.Width, req.Height))
	if data, ok, err := store.Get(ctx, key); err == nil && ok {
		var resp server.LayoutResponse
		if json.Unmarshal(data, &resp) == nil {
			c.Logger.Debug("Layout cache hit", "key", key)
			return resp, true, nil
		}
	}

	resp, err := server.Compute(req, fc)
	if err != nil {
		return server.LayoutResponse{}, false, err
	}
	if data, err := json.Marshal(resp); err == nil {
		if err := store.Set(ctx, key, data, layoutCacheTTL); err != nil {
			c.Logger.Warn("Layout cache write failed", "err", err)
		}
	}
	return resp, false, nil
}

func renderLayout(w io.Writer, resp server.LayoutResponse, cached bool) {
	rows := make([][]string, len(resp.Transforms))
	for i, t := range resp.Transforms {
		lift := ""
		if t.Lifted {
			lift = iconLifted
		}
		rows[i] = []string{
			strconv.Itoa(t.Index),
			fmt.Sprintf("%.1f", t.X),
			fmt.Sprintf("%.1f", t.Y),
			fmt.Sprintf("%.2f°", t.Degrees),
			lift,
		}
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("#", "x", "y", "angle", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 4:
				return StyleWarning
			case col == 0:
				return StyleDim
			}
			return StyleValue
		})

	fmt.Fprintln(w, tbl.Render())
	printKeyValue(w, "mode", resp.Mode)
	if resp.Radius > 0 {
		printKeyValue(w, "radius", fmt.Sprintf("%.1f", resp.Radius))
		printKeyValue(w, "half angle", fmt.Sprintf("%.2f°", resp.HalfAngle))
	}
	printKeyValue(w, "spacing", fmt.Sprintf("%.1f", resp.Spacing))
	if cached {
		printDetail(w, "cached")
	}
}
