package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardfan/internal/demo"
)

// demoCommand opens the windowed card table.
func (c *CLI) demoCommand() *cobra.Command {
	var cards int

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Open a window with a playable card fan",
		Long: `Open a window with a playable card fan.

Click a card to select it, hold to discard it and drag to reorder.
Keys: a add, s shuffle, o sort, r toggle arc, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("count") {
				cfg.Demo.Cards = cards
			}
			c.Logger.Info("Opening demo", "width", cfg.Demo.Width, "height", cfg.Demo.Height, "cards", cfg.Demo.Cards)
			return demo.Run(cmd.Context(), demo.Options{
				Width:  cfg.Demo.Width,
				Height: cfg.Demo.Height,
				Cards:  cfg.Demo.Cards,
				Fan:    cfg.Fan,
				Logger: c.Logger,
			})
		},
	}

	cmd.Flags().IntVarP(&cards, "count", "n", 0, "cards dealt at start (default: demo.cards)")
	return cmd
}
