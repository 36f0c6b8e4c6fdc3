package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"photo-manifest/internal/config"
	"photo-manifest/internal/files"
	"photo-manifest/internal/platform/paths"
	"photo-manifest/internal/secrets"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the saved configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current config summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault()
			if err != nil {
				return err
			}
			printConfigSummary(cmd.OutOrStdout(), cfg)
			return nil
		},
	})
	cmd.AddCommand(newConfigSetCmd())
	return cmd
}

type setFlags struct {
	apiListen         string
	debug             bool
	logFormat         string
	manifestPath      string
	publicBaseURL     string
	trustProxyHeaders bool
	allowOrigin       string
	folders           []string
	extensions        []string
	sizePriority      []string
	backend           string
	root              string
	s3Endpoint        string
	s3Bucket          string
	s3Prefix          string
	s3Region          string
	s3AccessKeyID     string
	s3UseSSL          bool
	s3SecretKey       string
}

func newConfigSetCmd() *cobra.Command {
	var f setFlags
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update config values and save",
		Example: "  photo-manifest config set --api-listen 0.0.0.0:8080 --root /srv/photos\n" +
			"  photo-manifest config set --backend s3 --s3-endpoint minio:9000 --s3-bucket photos --s3-secret-key ...",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.apiListen, "api-listen", "", "API listen address (host:port)")
	fl.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fl.StringVar(&f.logFormat, "log-format", "", "Log format: "+strings.Join(config.LogFormatOptions(), " or "))
	fl.StringVar(&f.manifestPath, "manifest-path", "", "URL path the manifest is served at")
	fl.StringVar(&f.publicBaseURL, "public-base-url", "", "Fixed base URL for manifest links (empty derives it per request)")
	fl.BoolVar(&f.trustProxyHeaders, "trust-proxy-headers", false, "Honor X-Forwarded-Proto/Host")
	fl.StringVar(&f.allowOrigin, "allow-origin", "", "Access-Control-Allow-Origin value (empty disables CORS)")
	fl.StringSliceVar(&f.folders, "folder", nil, "Variant folder name in reference order (repeatable)")
	fl.StringSliceVar(&f.extensions, "extension", nil, "Image extension (repeatable)")
	fl.StringSliceVar(&f.sizePriority, "size-priority", nil, "Folder order used to pick the reported size (repeatable)")
	fl.StringVar(&f.backend, "backend", "", "Storage backend: "+strings.Join(config.StorageBackendOptions(), " or "))
	fl.StringVar(&f.root, "root", "", "Local photo root directory")
	fl.StringVar(&f.s3Endpoint, "s3-endpoint", "", "S3 endpoint (host:port)")
	fl.StringVar(&f.s3Bucket, "s3-bucket", "", "S3 bucket")
	fl.StringVar(&f.s3Prefix, "s3-prefix", "", "Key prefix inside the bucket")
	fl.StringVar(&f.s3Region, "s3-region", "", "S3 region")
	fl.StringVar(&f.s3AccessKeyID, "s3-access-key-id", "", "S3 access key id")
	fl.BoolVar(&f.s3UseSSL, "s3-use-ssl", false, "Use TLS for S3")
	fl.StringVar(&f.s3SecretKey, "s3-secret-key", "", "S3 secret access key (stored securely; empty removes it)")
	return cmd
}

func runConfigSet(cmd *cobra.Command, f setFlags) error {
	out := cmd.OutOrStdout()
	fl := cmd.Flags()

	cfg, err := config.LoadOrDefault()
	if err != nil {
		return err
	}

	changed := false
	str := func(name string, dst *string, val string) {
		if fl.Changed(name) {
			*dst = strings.TrimSpace(val)
			changed = true
		}
	}
	boolean := func(name string, dst *bool, val bool) {
		if fl.Changed(name) {
			*dst = val
			changed = true
		}
	}
	list := func(name string, dst *[]string, val []string) {
		if fl.Changed(name) {
			*dst = cleanValues(val)
			changed = true
		}
	}

	str("api-listen", &cfg.APIListen, f.apiListen)
	boolean("debug", &cfg.Debug, f.debug)
	if fl.Changed("log-format") {
		cfg.LogFormat = config.LogFormat(strings.ToLower(strings.TrimSpace(f.logFormat)))
		changed = true
	}
	str("manifest-path", &cfg.ManifestPath, f.manifestPath)
	str("public-base-url", &cfg.PublicBaseURL, f.publicBaseURL)
	boolean("trust-proxy-headers", &cfg.TrustProxyHeaders, f.trustProxyHeaders)
	str("allow-origin", &cfg.AllowOrigin, f.allowOrigin)
	list("folder", &cfg.Folders, f.folders)
	list("extension", &cfg.ImageExtensions, f.extensions)
	list("size-priority", &cfg.SizePriority, f.sizePriority)
	if fl.Changed("backend") {
		cfg.Storage.Backend = config.StorageBackend(strings.ToLower(strings.TrimSpace(f.backend)))
		changed = true
	}
	str("root", &cfg.Storage.Root, f.root)
	str("s3-endpoint", &cfg.Storage.S3.Endpoint, f.s3Endpoint)
	str("s3-bucket", &cfg.Storage.S3.Bucket, f.s3Bucket)
	str("s3-prefix", &cfg.Storage.S3.Prefix, f.s3Prefix)
	str("s3-region", &cfg.Storage.S3.Region, f.s3Region)
	str("s3-access-key-id", &cfg.Storage.S3.AccessKeyID, f.s3AccessKeyID)
	boolean("s3-use-ssl", &cfg.Storage.S3.UseSSL, f.s3UseSSL)

	if changed {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}

	if fl.Changed("s3-secret-key") {
		if f.s3SecretKey == "" {
			if err := secrets.Delete(files.S3SecretKey); err != nil {
				return fmt.Errorf("failed to remove s3 secret key: %w", err)
			}
			fmt.Fprintln(out, "S3 secret key removed.")
		} else {
			if err := secrets.Set(files.S3SecretKey, []byte(f.s3SecretKey)); err != nil {
				return fmt.Errorf("failed to save s3 secret key: %w", err)
			}
			fmt.Fprintln(out, "S3 secret key saved.")
		}
	}

	if changed {
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintln(out, "Config saved.")
		return nil
	}

	if !fl.Changed("s3-secret-key") {
		fmt.Fprintln(out, "No changes requested. Example:")
		fmt.Fprintln(out, "  photo-manifest config set --api-listen 127.0.0.1:8080 --root /srv/photos")
	}
	return nil
}

func cleanValues(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func printConfigSummary(w io.Writer, cfg config.Config) {
	if p, err := paths.ConfigFilePath(); err == nil {
		fmt.Fprintf(w, "Config file: %s\n", p)
	}
	fmt.Fprintln(w, "Config summary:")
	fmt.Fprintf(w, "  API Listen: %s\n", cfg.APIListen)
	fmt.Fprintf(w, "  Debug: %v\n", cfg.Debug)
	fmt.Fprintf(w, "  Log Format: %s\n", cfg.LogFormat)
	fmt.Fprintf(w, "  Manifest Path: %s\n", cfg.ManifestPath)
	if cfg.PublicBaseURL == "" {
		fmt.Fprintln(w, "  Public Base URL: (derived per request)")
	} else {
		fmt.Fprintf(w, "  Public Base URL: %s\n", cfg.PublicBaseURL)
	}
	fmt.Fprintf(w, "  Trust Proxy Headers: %v\n", cfg.TrustProxyHeaders)
	if cfg.AllowOrigin == "" {
		fmt.Fprintln(w, "  Allow Origin: (CORS disabled)")
	} else {
		fmt.Fprintf(w, "  Allow Origin: %s\n", cfg.AllowOrigin)
	}

	opts := cfg.ManifestOptions()
	fmt.Fprintf(w, "  Folders: %s\n", strings.Join(opts.Folders, ", "))
	fmt.Fprintf(w, "  Extensions: %s\n", strings.Join(opts.Extensions, ", "))
	fmt.Fprintf(w, "  Size Priority: %s\n", strings.Join(opts.SizePriority, ", "))

	fmt.Fprintf(w, "  Storage Backend: %s\n", cfg.Storage.Backend)
	switch cfg.Storage.Backend {
	case config.StorageS3:
		s3 := cfg.Storage.S3
		fmt.Fprintf(w, "  S3 Endpoint: %s\n", s3.Endpoint)
		fmt.Fprintf(w, "  S3 Bucket: %s\n", s3.Bucket)
		fmt.Fprintf(w, "  S3 Prefix: %s\n", s3.Prefix)
		fmt.Fprintf(w, "  S3 Use SSL: %v\n", s3.UseSSL)
		if s3.AccessKeyID == "" {
			fmt.Fprintln(w, "  S3 Access Key ID: (empty)")
		} else {
			fmt.Fprintf(w, "  S3 Access Key ID: %s\n", s3.AccessKeyID)
		}
		if _, err := secrets.Get(files.S3SecretKey); err != nil {
			fmt.Fprintln(w, "  S3 Secret Key: (not stored)")
		} else {
			fmt.Fprintln(w, "  S3 Secret Key: (stored)")
		}
	default:
		fmt.Fprintf(w, "  Root: %s\n", cfg.Storage.Root)
	}
}
