package config

import "errors"

type ServerConfig struct {
	GRPCAddress string `mapstructure:"grpc-address"`
	APIToken    string `mapstructure:"api-token"`
}

func (cfg *ServerConfig) Validate() error {
	if cfg.GRPCAddress == "" {
		return errors.New("grpc-address must be set")
	}
	if cfg.APIToken == "" {
		return errors.New("api-token must be set")
	}
	return nil
}
