package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

//go:embed defaults.yaml
var defaultConfig []byte

const (
	ModeIndex  = "index"
	ModeSingle = "single"
)

type Config struct {
	Site struct {
		Name    string
		BaseURL string `validate:"required,url"`
	}
	Output struct {
		Dir          string `validate:"required"`
		SitemapsDir  string `validate:"required"`
		Mode         string `validate:"oneof=index single"`
		MaxPerFile   int    `validate:"min=1,max=50000"`
		ServicesPath string
	}
	Scan struct {
		RespectNoindex bool
		Rules          []ScanRule `validate:"dive"`
	}
	Expand struct {
		Target   int       `validate:"min=0"`
		Patterns []Pattern `validate:"dive"`
	}
	Keywords map[string][]string
	Database struct {
		Driver string `validate:"omitempty,oneof=sqlite3 postgres"`
		URL    string `validate:"required_with=Driver"`
	}
	Server struct {
		Port int `validate:"min=1,max=65535"`
	}
	Log struct {
		Dir string
	}
}

type ScanRule struct {
	Glob       string  `validate:"required"`
	Priority   float64 `validate:"gte=0,lte=1"`
	ChangeFreq string  `validate:"oneof=always hourly daily weekly monthly yearly never"`
}

type Pattern struct {
	Name       string
	Format     string  `validate:"required"`
	Axes       []Axis  `validate:"required,min=1,dive"`
	Priority   float64 `validate:"gte=0,lte=1"`
	ChangeFreq string  `validate:"oneof=always hourly daily weekly monthly yearly never"`
}

type Axis struct {
	Keyword string `validate:"required"`
	Limit   int    `validate:"min=0"`
}

// LoadConfig layers the embedded defaults, an optional config file and
// SITEMAPGEN_* environment variables. An empty path searches for
// sitemap.yaml in . and ./config; a missing file there is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(defaultConfig)); err != nil {
		return nil, fmt.Errorf("failed to read default config: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("sitemap")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to merge config: %w", err)
		}
	}

	v.SetEnvPrefix("SITEMAPGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks struct constraints and that every pattern axis names a
// keyword list that exists.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	for _, p := range c.Expand.Patterns {
		seen := make(map[string]bool, len(p.Axes))
		for _, axis := range p.Axes {
			// Each placeholder is substituted once per slug.
			if seen[axis.Keyword] {
				return fmt.Errorf("invalid config: pattern %q uses keyword list %q on more than one axis", p.Format, axis.Keyword)
			}
			seen[axis.Keyword] = true
			if _, ok := c.Keywords[axis.Keyword]; !ok {
				return fmt.Errorf("invalid config: pattern %q references unknown keyword list %q", p.Format, axis.Keyword)
			}
			if !strings.Contains(p.Format, "{"+axis.Keyword+"}") {
				return fmt.Errorf("invalid config: pattern %q has no {%s} placeholder", p.Format, axis.Keyword)
			}
		}
	}

	return nil
}

// SitemapsURL is the public URL of the chunk directory.
func (c *Config) SitemapsURL() string {
	return strings.TrimRight(c.Site.BaseURL, "/") + "/" + strings.Trim(c.Output.SitemapsDir, "/")
}
