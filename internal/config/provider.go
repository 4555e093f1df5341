package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/safedeploy/internal/domain"
	"github.com/trebuchet-org/safedeploy/internal/domain/config"
)

// Output formats accepted by --output
var outputFormats = []string{"table", "json", "yaml"}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	latest, err := domain.ParseProtocolVersion(v.GetString("latest_version"))
	if err != nil {
		return nil, fmt.Errorf("invalid latest_version: %w", err)
	}

	output := strings.ToLower(v.GetString("output"))
	if !lo.Contains(outputFormats, output) {
		return nil, fmt.Errorf("invalid output format %q (expected one of %s)", output, strings.Join(outputFormats, ", "))
	}

	configPath := v.GetString("config_path")
	file, err := loadFileConfig(configPath)
	if err != nil {
		return nil, err
	}

	networks, err := file.networks()
	if err != nil {
		return nil, err
	}

	overrides, err := file.overrides()
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:       projectRoot,
		ConfigPath:        configPath,
		Network:           v.GetString("network"),
		Registry:          resolveRegistry(projectRoot, os.ExpandEnv(v.GetString("registry"))),
		IncludeUnreleased: v.GetBool("include_unreleased"),
		LatestVersion:     latest,
		Overrides:         overrides,
		Networks:          networks,
		Debug:             v.GetBool("debug"),
		NonInteractive:    v.GetBool("non_interactive"),
		Output:            output,
		Timeout:           v.GetDuration("timeout"),
	}

	return cfg, nil
}

// resolveRegistry makes relative registry directories project-relative
func resolveRegistry(projectRoot, registry string) string {
	switch {
	case registry == "" || registry == config.RegistryEmbedded:
		return config.RegistryEmbedded
	case strings.HasPrefix(registry, "http://") || strings.HasPrefix(registry, "https://"):
		return registry
	case filepath.IsAbs(registry):
		return registry
	default:
		return filepath.Join(projectRoot, registry)
	}
}

// FindProjectRoot walks up from the current directory to find safedeploy.toml.
// Without one, the current directory is used.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance. Precedence is flags,
// then SAFEDEPLOY_* environment variables, then safedeploy.toml, then defaults.
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	loadEnvFiles(projectRoot)

	v := viper.New()

	configPath := filepath.Join(projectRoot, FileName)
	if cmd != nil {
		if f := cmd.Flag("config"); f != nil && f.Value.String() != "" {
			configPath = f.Value.String()
		}
	}
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	// Set up environment variables
	v.SetEnvPrefix("SAFEDEPLOY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("registry", config.RegistryEmbedded)
	v.SetDefault("latest_version", domain.DefaultLatestVersion)
	v.SetDefault("include_unreleased", false)
	v.SetDefault("output", "table")
	v.SetDefault("timeout", "30s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// The file is optional; decode errors surface from Provider
	if _, err := os.Stat(configPath); err == nil {
		_ = v.ReadInConfig()
		v.Set("config_path", configPath)
	}

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
				panic(err)
			}
		})
	}

	return v
}
