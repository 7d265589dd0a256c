// Package cmd provides the root command and CLI setup for filepipe.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"filepipe.dev/pkg/filepipe/internal/adapter"
	"filepipe.dev/pkg/filepipe/internal/controller"
	"filepipe.dev/pkg/filepipe/internal/domain"
)

var transformFlag string
var plainFlag bool
var logFileFlag string
var verboseFlag bool

// errReported marks a failure that the UI has already shown.
var errReported = errors.New("failure already reported")

const rootLongDescription = `Filepipe asks for an input file, validates it, reads it and shows a short
preview, applies a text transform, then asks where to save the result.

Every path is checked before it is used. A missing, unreadable or directory
path can be retried; a missing output directory can be created on request;
an existing output file is only replaced after confirmation.

Transforms:
  line-numbers     prefix every line with its number (default)
  uppercase        convert the whole text to upper case
  numbered-upper   "Line N: TEXT" for every line`

func init() {
	configureRootFlags(rootCmd)
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "filepipe",
		Short:         "Interactive file transform pipeline",
		Long:          rootLongDescription,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

			if configErr != nil {
				slog.Error("Invalid configuration", "file", configFileName, "error", configErr)
				return configErr
			}

			return nil
		},
		RunE: runPipeline,
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&transformFlag, transformFlagName, "t", viper.GetString(transformStrategyKey), "transform to apply: line-numbers, uppercase or numbered-upper")
	bindFlagToConfig(cmd.Flags().Lookup(transformFlagName), transformStrategyKey)

	cmd.Flags().BoolVar(&plainFlag, plainFlagName, viper.GetBool(plainConfigKey), "plain line prompts and unstyled output even on a terminal")
	bindFlagToConfig(cmd.Flags().Lookup(plainFlagName), plainConfigKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "path of the rotating log file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	strategy, err := domain.ParseStrategy(viper.GetString(transformStrategyKey))
	if err != nil {
		return err
	}

	transform, err := domain.NewTransform(strategy, viper.GetString(transformNumberFormatKey))
	if err != nil {
		return err
	}

	interactive := !viper.GetBool(plainConfigKey) && controller.IsTTY(os.Stdin) && controller.IsTTY(os.Stdout)

	ui := controller.NewUI(cmd, interactive)
	prompter := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), interactive)
	fsAdapter := adapter.NewLocalFSAdapter()
	confirmer := domain.NewConfirmer(prompter, ui)

	pipeline := domain.NewPipeline(
		ui,
		domain.NewPathAcquirer(fsAdapter, prompter, confirmer, ui),
		domain.NewContentReader(fsAdapter, confirmer, ui, viper.GetInt64(confirmAboveKey)),
		domain.NewContentWriter(fsAdapter),
		transform,
		previewOptions(),
	)

	slog.Info("Starting pipeline", "transform", strategy, "interactive", interactive)

	_, err = pipeline.Run(ctx)

	return finish(ctx, ui, err)
}

func newPrompter(in io.Reader, out io.Writer, interactive bool) adapter.Prompter {
	if interactive {
		return adapter.NewTUIPrompter(in, out)
	}

	return adapter.NewLinePrompter(in, out)
}

// finish reports the end of a run. Giving up is not an error; a classified
// failure is shown once and marked with errReported.
func finish(ctx context.Context, ui controller.UI, err error) error {
	if err == nil {
		slog.Info("Pipeline finished")
		return nil
	}

	if domain.IsAbandon(err) {
		slog.Info("Pipeline cancelled by user", "reason", domain.KindOf(err))
		ui.DisplayCancelled(ctx)

		return nil
	}

	var pe *domain.PipelineError
	if !errors.As(err, &pe) {
		return err
	}

	slog.Error("Pipeline failed", "kind", pe.Kind, "op", pe.Op, "path", pe.Path, "error", err)
	ui.DisplayFailure(ctx, err)

	return errors.Join(errReported, err)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, rootCmd, os.Stderr)

	stop()

	if code != 0 {
		os.Exit(code)
	}
}

func execute(ctx context.Context, cmd *cobra.Command, errOut io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Unexpected panic", "panic", r, "stack", string(debug.Stack()))
			_, _ = fmt.Fprintf(errOut, "Critical error: %v\n", r)
			code = 1
		}
	}()

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if !errors.Is(err, errReported) {
		_, _ = fmt.Fprintf(errOut, "Critical error: %v\n", err)
	}

	return 1
}
