package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"unicode"

	"photo-manifest/internal/manifest"
)

type StorageBackend string
type LogFormat string

const (
	StorageLocal StorageBackend = "local"
	StorageS3    StorageBackend = "s3"
)

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

type S3Config struct {
	Endpoint    string `yaml:"endpoint"`
	Bucket      string `yaml:"bucket"`
	Prefix      string `yaml:"prefix"`
	Region      string `yaml:"region"`
	AccessKeyID string `yaml:"accessKeyId"`
	UseSSL      bool   `yaml:"useSSL"`
}

type StorageConfig struct {
	Backend StorageBackend `yaml:"backend"`
	Root    string         `yaml:"root"`
	S3      S3Config       `yaml:"s3"`
}

type Config struct {
	APIListen         string        `yaml:"apiListen"`
	Debug             bool          `yaml:"debug"`
	LogFormat         LogFormat     `yaml:"logFormat"`
	ManifestPath      string        `yaml:"manifestPath"`
	PublicBaseURL     string        `yaml:"publicBaseURL"`
	TrustProxyHeaders bool          `yaml:"trustProxyHeaders"`
	AllowOrigin       string        `yaml:"allowOrigin"`
	Folders           []string      `yaml:"folders"`
	ImageExtensions   []string      `yaml:"imageExtensions"`
	SizePriority      []string      `yaml:"sizePriority,omitempty"`
	Storage           StorageConfig `yaml:"storage"`
}

func StorageBackendValues() []StorageBackend {
	return []StorageBackend{StorageLocal, StorageS3}
}

func StorageBackendOptions() []string {
	vals := StorageBackendValues()
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		out = append(out, string(v))
	}
	return out
}

func LogFormatOptions() []string {
	return []string{string(LogFormatText), string(LogFormatJSON)}
}

func Default() Config {
	opts := manifest.DefaultOptions()
	return Config{
		APIListen:       "127.0.0.1:8080",
		LogFormat:       LogFormatText,
		ManifestPath:    "/index.json",
		AllowOrigin:     "*",
		Folders:         []string(opts.Folders),
		ImageExtensions: opts.Extensions,
		Storage: StorageConfig{
			Backend: StorageLocal,
			Root:    ".",
		},
	}
}

// ManifestOptions converts the scan settings into builder options, falling back
// to the defaults for lists left empty.
func (c Config) ManifestOptions() manifest.Options {
	opts := manifest.DefaultOptions()
	if folders := cleanList(c.Folders); len(folders) > 0 {
		opts.Folders = manifest.FolderSet(folders)
	}
	if exts := cleanList(c.ImageExtensions); len(exts) > 0 {
		opts.Extensions = exts
	}
	if prio := cleanList(c.SizePriority); len(prio) > 0 {
		opts.SizePriority = prio
	} else if len(cleanList(c.Folders)) > 0 {
		opts.SizePriority = defaultPriorityFor(opts.Folders)
	}
	return opts
}

func (c Config) Validate() error {
	if err := ValidateListenAddr(strings.TrimSpace(c.APIListen)); err != nil {
		return err
	}
	if p := strings.TrimSpace(c.ManifestPath); p != "" {
		if err := ValidateManifestPath(p); err != nil {
			return err
		}
	}
	switch c.LogFormat {
	case "", LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("invalid logFormat %q", c.LogFormat)
	}
	switch c.Storage.Backend {
	case "", StorageLocal:
	case StorageS3:
		if strings.TrimSpace(c.Storage.S3.Endpoint) == "" || strings.TrimSpace(c.Storage.S3.Bucket) == "" {
			return errors.New("storage.s3 endpoint and bucket are required")
		}
	default:
		return fmt.Errorf("invalid storage backend %q", c.Storage.Backend)
	}
	if err := c.ManifestOptions().Validate(); err != nil {
		return fmt.Errorf("folders: %w", err)
	}
	return nil
}

func ValidateListenAddr(addr string) error {
	if addr == "" {
		return errors.New("apiListen is required")
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return errors.New("apiListen must be in host:port format")
	}
	if host == "" {
		return errors.New("apiListen host is required")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return errors.New("apiListen port is invalid")
	}

	return nil
}

// ValidateManifestPath checks that p can be served as a literal route: absolute,
// no empty or dot segments, and none of the characters the route syntax or URL
// escaping would reinterpret.
func ValidateManifestPath(p string) error {
	if !strings.HasPrefix(p, "/") {
		return errors.New("manifestPath must start with /")
	}
	if strings.ContainsAny(p, "{}%?#\\") {
		return fmt.Errorf("manifestPath %q must not contain any of {}%%?#\\", p)
	}
	for _, r := range p {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("manifestPath %q must not contain spaces or control characters", p)
		}
	}
	segs := strings.Split(strings.TrimPrefix(p, "/"), "/")
	for i, seg := range segs {
		if seg == "" && i == len(segs)-1 {
			continue
		}
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("manifestPath %q has an empty or dot segment", p)
		}
	}
	return nil
}

// defaultPriorityFor keeps the original > compress > thumbnail order for the
// folders that exist in a custom folder set, then appends the rest.
func defaultPriorityFor(folders manifest.FolderSet) []string {
	out := make([]string, 0, len(folders))
	used := map[string]bool{}
	for _, name := range manifest.DefaultSizePriority() {
		for _, f := range folders {
			if f == name && !used[f] {
				out = append(out, f)
				used[f] = true
			}
		}
	}
	for _, f := range folders {
		if !used[f] {
			out = append(out, f)
		}
	}
	return out
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
