package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

const HelpMessage = `
Kart lap times

Usage:
  laptimes [--config-path <file>]
  laptimes --help

Options:
  --config-path   Path to the YAML config file (default: config.yaml)
  --help          Show this screen

Every setting can be overridden with an environment variable, e.g.
APP_IDENTIFIER=student_number SESSION_BACKEND=postgres laptimes
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		pflag.Usage()
	}
}

// PrintConfig prints the effective configuration without secrets.
func PrintConfig(cfg *Config) {
	fmt.Println("Configuration:")
	fmt.Printf("  app:      name=%s log_level=%s identifier=%s\n", cfg.App.Name, cfg.App.LogLevel, cfg.App.Identifier)
	fmt.Printf("  http:     addr=%s read=%s write=%s shutdown=%s\n",
		cfg.HTTP.Addr(), cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout, cfg.HTTP.ShutdownTimeout)
	fmt.Printf("  session:  backend=%s cookie=%s ttl=%s secure=%t\n",
		cfg.Session.Backend, cfg.Session.CookieName, cfg.Session.TTL.Round(time.Second), cfg.Session.SecureCookie)
	if cfg.Session.Backend == "postgres" {
		fmt.Printf("  database: %s@%s:%s/%s\n", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
	}
}
