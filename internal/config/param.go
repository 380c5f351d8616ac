package config

import (
	_ "embed"
)

//go:embed param_default.yaml
var ParamDefaultFile []byte

type Param struct {
	Library  string `yaml:"library" env:"BOBER_LIBRARY" env-default:"library.json"`
	Format   string `yaml:"format" env:"BOBER_FORMAT" env-default:"json"`
	LogLevel string `yaml:"log_level" env:"BOBER_LOG_LEVEL" env-default:"info"`
}
