// Package config provides the configuration loader for pnp.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.trai.ch/pnp/internal/core/domain"
	"go.trai.ch/pnp/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Filenames lists the configuration files looked up in each directory, in priority order.
var Filenames = []string{".pnprc.yml", ".pnprc.yaml", ".pnprc.toml"}

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using YAML or TOML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration at path. With an empty path the configuration is discovered
// upward from cwd, and defaults are returned when none exists.
func (l *Loader) Load(cwd, path string) (*domain.Config, error) {
	if path == "" {
		found, ok := Discover(cwd)
		if !ok {
			return domain.DefaultConfig(), nil
		}
		path = found
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file File
	if strings.HasSuffix(path, ".toml") {
		err = l.decodeTOML(data, &file, path)
	} else {
		err = decodeYAML(data, &file)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	cfg, err := apply(domain.DefaultConfig(), &file, filepath.Dir(path))
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	cfg.Path = path
	return cfg, nil
}

// Discover walks up from cwd and returns the first configuration file found.
func Discover(cwd string) (string, bool) {
	dir := filepath.Clean(cwd)
	for {
		for _, name := range Filenames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				return candidate, true
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func decodeYAML(data []byte, file *File) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(file); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (l *Loader) decodeTOML(data []byte, file *File, path string) error {
	meta, err := toml.Decode(string(data), file)
	if err != nil {
		return err
	}
	for _, key := range meta.Undecoded() {
		l.Logger.Warn("ignoring unknown key " + key.String() + " in " + path)
	}
	return nil
}

// apply overlays the keys set in file onto cfg. Relative paths are taken from dir.
func apply(cfg *domain.Config, file *File, dir string) (*domain.Config, error) {
	if file.StateFile != nil {
		stateFile := *file.StateFile
		if !filepath.IsAbs(stateFile) {
			stateFile = filepath.Join(dir, filepath.FromSlash(stateFile))
		}
		cfg.StateFile = stateFile
	}

	if file.Extensions != nil {
		for _, ext := range file.Extensions {
			if !strings.HasPrefix(ext, ".") {
				return nil, invalidValue("extensions", ext)
			}
		}
		cfg.Extensions = file.Extensions
	}

	if file.MaxOpenArchives != nil {
		if *file.MaxOpenArchives <= 0 {
			return nil, invalidValue("maxOpenArchives", *file.MaxOpenArchives)
		}
		cfg.MaxOpenArchives = *file.MaxOpenArchives
	}

	if file.ArchiveBackend != nil {
		backend, err := domain.ParseArchiveBackend(*file.ArchiveBackend)
		if err != nil {
			return nil, err
		}
		cfg.ArchiveBackend = backend
	}

	if file.LogFormat != nil {
		switch format := domain.LogFormat(*file.LogFormat); format {
		case domain.LogFormatPretty, domain.LogFormatJSON:
			cfg.LogFormat = format
		default:
			return nil, invalidValue("logFormat", *file.LogFormat)
		}
	}

	cfg.Fallback = file.Fallback
	return cfg, nil
}

func invalidValue(key string, value any) error {
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidConfigValue, "invalid configuration"), "key", key), "value", value)
}
