package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/srcexcerpt/internal/configloader"
	"github.com/yaklabco/srcexcerpt/internal/logging"
	"github.com/yaklabco/srcexcerpt/pkg/config"
)

// commonFlags are the ingestion flags shared by every subcommand that reads
// source text.
type commonFlags struct {
	chunkSize      int
	expectedLength int
	markdown       bool
}

func addCommonFlags(cmd *cobra.Command, flags *commonFlags) {
	cmd.Flags().IntVar(&flags.chunkSize, "chunk-size", config.DefaultChunkSize, "bytes read per chunk")
	cmd.Flags().IntVar(&flags.expectedLength, "expected-length", 0,
		"expected document length in characters (0 = derive from input)")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "checkpoint Markdown block starts before queries")
}

// apply copies explicitly set flags onto cfg.
func (f *commonFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("chunk-size") {
		cfg.ChunkSize = f.chunkSize
	}
	if cmd.Flags().Changed("expected-length") {
		cfg.ExpectedLength = f.expectedLength
	}
	if cmd.Flags().Changed("markdown") {
		cfg.Markdown = &f.markdown
	}
	if cmd.Flags().Changed("color") {
		if color, err := cmd.Flags().GetString("color"); err == nil {
			cfg.Color = color
		}
	}
}

// commandContext returns the command context, or a background context
// carrying the default logger.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// loadConfig resolves the effective configuration with cliCfg on top.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	logger := logging.FromContext(ctx)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", errors.Join(ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFormat, cfg.Format,
		logging.FieldChunkSize, cfg.ChunkSize,
		logging.FieldJobs, cfg.Jobs,
	)

	return cfg, workDir, nil
}

// noArgs rejects positional arguments.
func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, args[0])
	}
	return nil
}

// minArgs requires at least n positional arguments.
func minArgs(n int, what string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < n {
			return fmt.Errorf("%w: missing %s", ErrUsage, what)
		}
		return nil
	}
}
