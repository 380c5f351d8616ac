package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jypelle/boberplayer/internal/codec"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
)

const paramFilename = "param.yaml"

type Config struct {
	ConfigDir string
	DebugMode bool

	*Param
}

// NewConfig loads param.yaml from configDir, creating the folder and a
// default param file when they are missing. BOBER_* environment variables
// override the file.
func NewConfig(configDir string, debugMode bool) (*Config, error) {
	config := &Config{
		ConfigDir: configDir,
		DebugMode: debugMode,
		Param:     &Param{},
	}

	// Check configuration folder
	_, err := os.Stat(configDir)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("unable to access config folder %s: %w", configDir, err)
		}
		logrus.Printf("Creation of config folder: %s", configDir)
		if err = os.MkdirAll(configDir, 0770); err != nil {
			return nil, fmt.Errorf("unable to create config folder: %w", err)
		}
	}

	// Create default param file
	_, err = os.Stat(config.CompleteParamFilename())
	if os.IsNotExist(err) {
		logrus.Infof("Create default param file")
		if err = yaml.Unmarshal(ParamDefaultFile, config.Param); err != nil {
			return nil, fmt.Errorf("unable to interpret default param file: %w", err)
		}
		if err = config.SaveParam(); err != nil {
			return nil, err
		}
	}

	if err = cleanenv.ReadConfig(config.CompleteParamFilename(), config.Param); err != nil {
		return nil, fmt.Errorf("unable to interpret param file: %w", err)
	}

	return config, nil
}

func (c *Config) CompleteParamFilename() string {
	return filepath.Join(c.ConfigDir, paramFilename)
}

// CompleteLibraryFilename resolves the library param against the config folder.
func (c *Config) CompleteLibraryFilename() string {
	if filepath.IsAbs(c.Library) {
		return c.Library
	}
	return filepath.Join(c.ConfigDir, c.Library)
}

func (c *Config) OutputFormat() (codec.Format, error) {
	return codec.ParseFormat(c.Format)
}

func (c *Config) LogrusLevel() (logrus.Level, error) {
	if c.DebugMode {
		return logrus.DebugLevel, nil
	}
	return logrus.ParseLevel(c.LogLevel)
}

func (c *Config) SaveParam() error {
	logrus.Debugf("Save param file: %s", c.CompleteParamFilename())
	rawConfig, err := yaml.Marshal(c.Param)
	if err != nil {
		return fmt.Errorf("unable to serialize param file: %w", err)
	}
	if err = os.WriteFile(c.CompleteParamFilename(), rawConfig, 0660); err != nil {
		return fmt.Errorf("unable to save param file: %w", err)
	}
	return nil
}
