// Package config loads the example server's settings. Values come from the
// defaults, then an optional ini file, then command-line flags.
package config

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	beecfg "github.com/astaxie/beego/config"
)

type Config struct {
	Host        string
	Port        int
	Dir         string
	ReadBuffer  int
	ReadTimeout time.Duration
	LogLevel    slog.Level
}

func Default() Config {
	return Config{
		Host:       "127.0.0.1",
		Port:       9000,
		Dir:        "public",
		ReadBuffer: 64 * 1024,
		LogLevel:   slog.LevelInfo,
	}
}

// Addr is host:port for display.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load parses args. A -config flag names an ini file whose keys override
// the defaults; flags given explicitly override the file.
func Load(args []string) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	path := fs.String("config", "", "ini file with server settings")
	host := fs.String("host", cfg.Host, "interface to listen on")
	port := fs.Int("port", cfg.Port, "port to listen on")
	dir := fs.String("dir", cfg.Dir, "directory served by the static middleware")
	readBuffer := fs.Int("read-buffer", cfg.ReadBuffer, "bytes read from each connection")
	readTimeout := fs.Duration("read-timeout", cfg.ReadTimeout, "read deadline per connection, 0 for none")
	logLevel := fs.String("log-level", "info", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *path != "" {
		ini, err := beecfg.NewConfig("ini", *path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", *path, err)
		}
		if err := apply(&cfg, ini); err != nil {
			return cfg, fmt.Errorf("config %s: %w", *path, err)
		}
	}

	var err error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Host = *host
		case "port":
			cfg.Port = *port
		case "dir":
			cfg.Dir = *dir
		case "read-buffer":
			cfg.ReadBuffer = *readBuffer
		case "read-timeout":
			cfg.ReadTimeout = *readTimeout
		case "log-level":
			cfg.LogLevel, err = parseLevel(*logLevel)
		}
	})
	return cfg, err
}

// LoadData applies ini-formatted data over the defaults.
func LoadData(data []byte) (Config, error) {
	cfg := Default()
	ini, err := beecfg.NewConfigData("ini", data)
	if err != nil {
		return cfg, err
	}
	return cfg, apply(&cfg, ini)
}

func apply(cfg *Config, ini beecfg.Configer) error {
	cfg.Host = ini.DefaultString("host", cfg.Host)
	cfg.Port = ini.DefaultInt("port", cfg.Port)
	cfg.Dir = ini.DefaultString("dir", cfg.Dir)
	cfg.ReadBuffer = ini.DefaultInt("read_buffer", cfg.ReadBuffer)

	if v := ini.String("read_timeout"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("read_timeout: %w", err)
		}
		cfg.ReadTimeout = d
	}
	if v := ini.String("log_level"); v != "" {
		level, err := parseLevel(v)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}
