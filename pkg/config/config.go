package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/byxorna/roster/pkg/db/rest"
	"github.com/byxorna/roster/pkg/debounce"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "~/.roster.yaml"
)

var (
	// Default is the configuration used when no file is found, and the base that
	// a config file is merged over
	Default = Config{
		BaseURL:      rest.DefaultBaseURL,
		Timeout:      10 * time.Second,
		Retries:      0,
		Debounce:     debounce.DefaultInterval,
		Locale:       "en",
		LogLevel:     "info",
		LogFormat:    "text",
		GlamourStyle: "dark",
	}
)

type Config struct {
	BaseURL  string        `yaml:"baseURL" validate:"required,url"`
	Timeout  time.Duration `yaml:"timeout" validate:"gte=0"`
	Retries  int           `yaml:"retries" validate:"gte=0,lte=10"`
	Debounce time.Duration `yaml:"debounce" validate:"gt=0"`
	Locale   string        `yaml:"locale" validate:"required,bcp47_language_tag"`

	// DataDir, when set, reads users.json and posts.json from a directory
	// instead of BaseURL, reloading when they change
	DataDir string `yaml:"dataDir,omitempty"`

	LogLevel  string `yaml:"logLevel" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"logFormat" validate:"oneof=text json"`
	// LogFile is where the interactive UI logs. Defaults to a file in the XDG
	// state directory
	LogFile string `yaml:"logFile,omitempty" validate:""`

	GlamourStyle string `yaml:"glamourStyle" validate:"oneof=ascii dark dracula light notty pink tokyo-night"`

	// Sort lists columns to toggle at startup, in order. Naming a column twice
	// sorts it descending
	Sort []string `yaml:"sort,omitempty" validate:"dive,oneof=name email city company"`
}

func NewFromReader(r io.Reader) (*Config, error) {
	c := Default

	bytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read Config: %w", err)
	}
	err = yaml.Unmarshal(bytes, &c)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal Config: %w", err)
	}

	c.Normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads the config file at path, expanding ~. A missing file yields the
// default configuration.
func Load(path string) (*Config, error) {
	expandedPath, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(expandedPath)
	if errors.Is(err, fs.ErrNotExist) {
		c := Default
		return &c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open config %s: %w", expandedPath, err)
	}
	defer f.Close()

	c, err := NewFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("unable to load configuration %s: %w", expandedPath, err)
	}
	return c, nil
}

// Normalize lowercases the fields whose values are matched case insensitively.
func (c *Config) Normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}

func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	return nil
}

// Language is the collation locale for sorting.
func (c Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}
