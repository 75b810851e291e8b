package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Port            string
	BindAddr        string
	CaptainDomain   string // base domain for ArgoCD UI links
	LogLevel        string
	PageSize        int64 // 0 disables pagination
	UpstreamTimeout time.Duration
	Kubeconfig      string // --kubeconfig only; $KUBECONFIG is left to the loading rules
	AllowedOrigins  []string
}

// BindFlags registers the command-line flags that override the environment.
func BindFlags(fs *pflag.FlagSet) {
	fs.String("bind", "0.0.0.0", "address to listen on")
	fs.String("port", "8000", "port to listen on")
	fs.String("kubeconfig", "", "path to a kubeconfig file; takes precedence over in-cluster credentials and $KUBECONFIG")
	fs.Int64("page-size", 100, "applications fetched per list call, 0 to disable pagination")
}

func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("port", "8000")
	v.SetDefault("bind", "0.0.0.0")
	v.SetDefault("captain_domain", "")
	v.SetDefault("log_level", "warning")
	v.SetDefault("page_size", 100)
	v.SetDefault("upstream_timeout", "10s")
	v.SetDefault("kubeconfig", "")
	v.SetDefault("allowed_origins", "")

	for key, env := range map[string]string{
		"port":             "PORT",
		"bind":             "BIND_ADDR",
		"captain_domain":   "CAPTAIN_DOMAIN",
		"log_level":        "LOG_LEVEL",
		"page_size":        "PAGE_SIZE",
		"upstream_timeout": "UPSTREAM_TIMEOUT",
		"allowed_origins":  "ALLOWED_ORIGINS",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if fs != nil {
		for key, flag := range map[string]string{
			"port":       "port",
			"bind":       "bind",
			"kubeconfig": "kubeconfig",
			"page_size":  "page-size",
		} {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag --%s: %w", flag, err)
				}
			}
		}
	}

	cfg := &Config{
		Port:           v.GetString("port"),
		BindAddr:       v.GetString("bind"),
		CaptainDomain:  v.GetString("captain_domain"),
		LogLevel:       v.GetString("log_level"),
		PageSize:       v.GetInt64("page_size"),
		Kubeconfig:     v.GetString("kubeconfig"),
		AllowedOrigins: splitList(v.GetString("allowed_origins")),
	}

	timeout, err := time.ParseDuration(v.GetString("upstream_timeout"))
	if err != nil {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT: %w", err)
	}
	cfg.UpstreamTimeout = timeout

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.BindAddr + ":" + c.Port
}

func (c *Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	if c.PageSize < 0 {
		return fmt.Errorf("page size must be >= 0, got %d", c.PageSize)
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive, got %s", c.UpstreamTimeout)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
