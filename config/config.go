package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/expand"
)

const appName = "pagecast"

var configHomePath string

// Config 是命令行工具的配置文件内容，所有字段都可省略。
type Config struct {
	// 档案 DSL 文件路径，相对路径以配置文件所在目录为基准
	Profiles string `yaml:"profiles,omitempty" json:"profiles,omitempty"`
	// 默认使用的档案名称
	Profile string `yaml:"profile,omitempty" json:"profile,omitempty"`
	// 渲染后端：canvas、raster 或 gg
	Backend string `yaml:"backend,omitempty" json:"backend,omitempty"`
	// 排版规范化使用的语言（BCP 47）
	Language string `yaml:"language,omitempty" json:"language,omitempty"`
	// 自定义字体：名称 -> 字体文件路径
	Fonts map[string]string `yaml:"fonts,omitempty" json:"fonts,omitempty"`
	// 图片输出目录
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
	// 并发渲染的页数上限，0 表示不限制
	Workers int `yaml:"workers,omitempty" json:"workers,omitempty"`
	Log     Log `yaml:"log,omitempty" json:"log,omitempty"`

	path string
}

type Log struct {
	Level string `yaml:"level,omitempty" json:"level,omitempty"`
	File  string `yaml:"file,omitempty" json:"file,omitempty"`
}

// Load 读取配置文件。path 为空时依次查找
// $XDG_CONFIG_HOME/pagecast/config.yml 与 config.yaml，都不存在时返回空配置。
func Load(path string) (_ *Config, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		return parse(b, path)
	}
	for _, ext := range []string{".yml", ".yaml"} {
		p := filepath.Join(ConfigHomePath(), "config"+ext)
		if b, err := os.ReadFile(p); err == nil {
			return parse(b, p)
		}
	}
	// If no config file is found, return an empty config
	return &Config{}, nil
}

func parse(b []byte, path string) (*Config, error) {
	cfg := &Config{}
	// 展开 ${ENV} 形式的环境变量
	if err := yaml.Unmarshal(expand.ExpandenvYAMLBytes(b), cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
	}
	cfg.path = path
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Backend) {
	case "", "canvas", "raster", "gg":
	default:
		return fmt.Errorf("unknown backend %q (canvas, raster or gg)", c.Backend)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative: %d", c.Workers)
	}
	return nil
}

// Path 返回实际读取的配置文件路径，未读取任何文件时为空。
func (c *Config) Path() string { return c.path }

// Resolve 把相对路径解析为相对于配置文件所在目录的路径。
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.path), p)
}

// ProfilesPath 返回档案 DSL 文件的路径。
func (c *Config) ProfilesPath() string { return c.Resolve(c.Profiles) }

// FontPaths 返回自定义字体，路径已解析。
func (c *Config) FontPaths() map[string]string {
	out := make(map[string]string, len(c.Fonts))
	for name, p := range c.Fonts {
		out[name] = c.Resolve(p)
	}
	return out
}

// ConfigHomePath returns the path to the configuration directory.
func ConfigHomePath() string {
	if configHomePath != "" {
		return configHomePath
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		configHomePath = filepath.Join(v, appName)
	} else if home, err := os.UserHomeDir(); err == nil {
		configHomePath = filepath.Join(home, ".config", appName)
	}
	return configHomePath
}
