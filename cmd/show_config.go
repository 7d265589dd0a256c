package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command.
var configCmd = newConfigCmd()

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the settings filepipe would run with, after merging defaults,
filepipe.yaml, FILEPIPE_* environment variables and flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := renderSettings(viper.AllSettings())
			if err != nil {
				return err
			}

			cmd.Print(out)

			return nil
		},
	}
}

func renderSettings(settings map[string]any) (string, error) {
	out, err := yaml.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("failed to render settings: %w", err)
	}

	return string(out), nil
}

func init() {
	rootCmd.AddCommand(configCmd)
}
