package config

import (
	"fmt"

	"fundscontroller/core"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/config"
)

// Load load config file
func Load(cfgFile string, cfg *core.Config) error {
	config.AutomaticLoadEnv("FUNDS")
	if err := config.LoadYaml(cfgFile, cfg); err != nil {
		return err
	}

	defaultGateway(cfg)

	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

func defaultGateway(cfg *core.Config) {
	if cfg.Gateway.Timeout <= 0 {
		cfg.Gateway.Timeout = 30
	}
}
