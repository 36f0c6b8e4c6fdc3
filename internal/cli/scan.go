package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"photo-manifest/internal/config"
	"photo-manifest/internal/files"
	"photo-manifest/internal/manifest"
)

func newScanCmd() *cobra.Command {
	var (
		root    string
		baseURL string
		strict  bool
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Build the manifest once and print it",
		Long: "Scans the configured photo storage (or --root) and writes the manifest JSON to stdout.\n" +
			"Missing folders or images still print a manifest with success=false.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("root") {
				cfg.Storage = config.StorageConfig{Backend: config.StorageLocal, Root: root}
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			store, err := files.New(ctx, cfg.Storage)
			if err != nil {
				return err
			}
			opts := cfg.ManifestOptions()
			if err := opts.Validate(); err != nil {
				return err
			}

			res, err := manifest.Build(ctx, store, opts, scanBaseURL(cfg, baseURL))
			if err != nil {
				return err
			}
			if err := manifest.Encode(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if strict && !res.Success() {
				return errors.New(res.Message())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Scan this local directory instead of the configured storage")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Base URL for image links")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when no folders or images are found")
	return cmd
}

// scanBaseURL picks the link prefix: the flag, then the configured public URL,
// then the address the daemon would answer on.
func scanBaseURL(cfg config.Config, flag string) string {
	if strings.TrimSpace(flag) != "" {
		return manifest.NormalizeBaseURL(flag)
	}
	if strings.TrimSpace(cfg.PublicBaseURL) != "" {
		return manifest.NormalizeBaseURL(cfg.PublicBaseURL)
	}
	return manifest.BaseURL(manifest.Request{
		Host:       cfg.APIListen,
		ScriptPath: cfg.ManifestPath,
	})
}
