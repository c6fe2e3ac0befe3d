package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/viant/asenabuild/builder/imports"
	"github.com/viant/asenabuild/discovery"
)

// configName is the config file name without extension.
const configName = ".asenarc"

// envPrefix is the environment variable prefix for asena settings.
const envPrefix = "ASENA"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// Defaults
const (
	DefaultSourceFolder   = "src"
	DefaultRootFile       = "src/index.ts"
	DefaultOutdir         = "out"
	DefaultRuntime        = discovery.DefaultRuntime
	DefaultInternalMarker = imports.DefaultInternalMarker
)

// Load loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, .asenarc (json or yaml) is searched in projectDir.
// Missing config file is not an error; defaults are used.
func Load(projectDir, configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if projectDir == "" {
		projectDir = "."
	}
	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(projectDir)
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}
	cfg.ProjectDir = projectDir
	if abs, err := filepath.Abs(projectDir); err == nil {
		cfg.ProjectDir = abs
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("sourceFolder", DefaultSourceFolder)
	viperCfg.SetDefault("rootFile", DefaultRootFile)
	viperCfg.SetDefault("internalMarker", DefaultInternalMarker)

	viperCfg.SetDefault("buildOptions.outdir", DefaultOutdir)

	viperCfg.SetDefault("discovery.exclude", discovery.DefaultExcludedDirs)
	viperCfg.SetDefault("discovery.extensions", discovery.DefaultExtensions)
	viperCfg.SetDefault("discovery.loader", LoaderProcess)
	viperCfg.SetDefault("discovery.runtime", DefaultRuntime)
	viperCfg.SetDefault("discovery.concurrency", discovery.DefaultConcurrency)
	viperCfg.SetDefault("discovery.decorators", discovery.DefaultDecorators)
	viperCfg.SetDefault("discovery.metadataKey", discovery.DefaultMetadataKey)
	viperCfg.SetDefault("discovery.cacheSize", 0)
	viperCfg.SetDefault("discovery.envFile", "")
}
