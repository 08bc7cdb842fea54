package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/docview"
	"github.com/gogpu/docview/thumbcache"
)

// fileConfig is the optional on-disk configuration. Flags take precedence
// over values loaded from here.
type fileConfig struct {
	CacheDir       string  `yaml:"cache_dir"`
	RenderScale    float64 `yaml:"render_scale"`
	ThumbnailScale float64 `yaml:"thumbnail_scale"`
}

// loadFileConfig reads the yaml config at path, falling back to
// <user config dir>/docview/config.yaml. A missing file is not an error.
func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(base, "docview", "config.yaml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// openOptions translates the file config into library options.
func (c fileConfig) openOptions() ([]docview.Option, error) {
	var opts []docview.Option
	if c.CacheDir != "" {
		store, err := thumbcache.New(c.CacheDir)
		if err != nil {
			return nil, err
		}
		opts = append(opts, docview.WithThumbnailCache(store))
	}
	if c.RenderScale > 0 {
		opts = append(opts, docview.WithRenderScale(c.RenderScale))
	}
	if c.ThumbnailScale > 0 {
		opts = append(opts, docview.WithThumbnailScale(c.ThumbnailScale))
	}
	return opts, nil
}

// openDocument loads the config and opens one document with it.
func openDocument(configPath, file string) (*docview.DocumentContent, error) {
	cfg, err := loadFileConfig(configPath)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.openOptions()
	if err != nil {
		return nil, err
	}
	return docview.Open(file, opts...)
}
