package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardfan/internal/config"
)

// configCommand creates the configuration management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write and inspect the configuration file",
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configPathCommand())

	return cmd
}

// configInitCommand writes the default configuration.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolveConfigPath(args)
			if err != nil {
				return err
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "Wrote default configuration")
			printFile(out, path)
			printNextStep(out, "Inspect it", "cardfan config show --config "+path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

// configShowCommand prints the effective configuration.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Long: `Print the effective configuration as TOML: defaults, overlaid with the
configuration file and CARDFAN_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return config.Encode(cmd.OutOrStdout(), cfg)
		},
	}
}

// configPathCommand prints where the configuration is read from.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolveConfigPath(nil)
			if err != nil {
				return err
			}
			printFile(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// resolveConfigPath picks the positional path, then --config, then the
// default location.
func (c *CLI) resolveConfigPath(args []string) (string, error) {
	switch {
	case len(args) > 0:
		return args[0], nil
	case c.configPath != "":
		return c.configPath, nil
	}
	return config.DefaultPath()
}
