package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

const defaultConfigName = "seedreport.yaml"

type SMTPConfig struct {
	Host string `yaml:"host" validate:"omitempty,hostname|ip"`
	Port int    `yaml:"port" validate:"omitempty,min=1,max=65535"`
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
}

type EmailConfig struct {
	From string `yaml:"from" validate:"omitempty,email"`
	To   string `yaml:"to" validate:"omitempty,email"`
}

// ReportConfig tunes the paginated layout and header metadata.
type ReportConfig struct {
	Author        string  `yaml:"author"`
	FooterReserve float64 `yaml:"footerReserve" validate:"omitempty,gte=30,lte=400"`
	Calendar      string  `yaml:"calendar"`
	RevisitAfter  int     `yaml:"revisitAfterWorkdays" validate:"gte=0,lte=260"`
}

// RenderConfig tunes the rasterized pipeline.
type RenderConfig struct {
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
	Scale   float64       `yaml:"scale" validate:"gte=0,lte=4"`
}

type Config struct {
	SMTP   SMTPConfig   `yaml:"smtp"`
	Email  EmailConfig  `yaml:"email"`
	Report ReportConfig `yaml:"report"`
	Render RenderConfig `yaml:"render"`
}

// defaultConfig is used when no configuration file exists.
func defaultConfig() Config {
	return Config{
		SMTP: SMTPConfig{Port: 587},
		Report: ReportConfig{
			Author:        "SEED Profile",
			FooterReserve: defaultFooterMargin,
			Calendar:      "US",
			RevisitAfter:  20,
		},
		Render: RenderConfig{
			Timeout: 30 * time.Second,
			Scale:   defaultCanvas.Scale,
		},
	}
}

// EmailEnabled reports whether enough is configured to send mail.
func (c *Config) EmailEnabled() bool {
	return c.SMTP.Host != "" && c.Email.From != "" && c.Email.To != ""
}

var validate = validator.New()

// loadConfig reads the YAML configuration. An explicit path must exist;
// otherwise name is looked up in the working directory and defaults are
// used when it is absent.
func loadConfig(name, explicit string) (*Config, error) {
	cfg := defaultConfig()

	path := explicit
	if path == "" {
		path = name
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case explicit == "" && errors.Is(err, os.ErrNotExist):
		// no config file; defaults only
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if pass := os.Getenv("SEED_SMTP_PASS"); pass != "" {
		cfg.SMTP.Pass = pass
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
