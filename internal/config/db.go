package config

import (
	"errors"
	"fmt"
	"strings"
)

type DbConfig struct {
	// ConnStr takes precedence over the individual fields when set
	ConnStr        string `mapstructure:"conn-str"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	DbName         string `mapstructure:"db-name"`
	SSLMode        string `mapstructure:"ssl-mode"`
	MaxOpenConns   int    `mapstructure:"max-open-conns"`
	ConnectRetries uint   `mapstructure:"connect-retries"`
}

func (cfg *DbConfig) Validate() error {
	if cfg.ConnStr != "" {
		return nil
	}
	if cfg.Host == "" {
		return errors.New("db host must be set")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("db port %d is out of range", cfg.Port)
	}
	if cfg.Username == "" {
		return errors.New("db username must be set")
	}
	if cfg.DbName == "" {
		return errors.New("db name must be set")
	}
	if cfg.MaxOpenConns < 0 {
		return errors.New("max-open-conns must be non-negative")
	}
	return nil
}

// DSN returns the lib/pq connection string
func (cfg *DbConfig) DSN() string {
	if cfg.ConnStr != "" {
		return cfg.ConnStr
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dsnValue(cfg.Host), cfg.Port, dsnValue(cfg.Username), dsnValue(cfg.Password),
		dsnValue(cfg.DbName), dsnValue(cfg.SSLMode))
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// dsnValue single-quotes a keyword/value DSN value, escaping backslashes and quotes
func dsnValue(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}
