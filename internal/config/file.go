package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/safedeploy/internal/domain"
)

// FileName is the project configuration file
const FileName = "safedeploy.toml"

// fileConfig is the raw safedeploy.toml structure. Scalar settings are read
// through viper; the tables below are decoded here.
type fileConfig struct {
	Networks  map[string]networkEntry `toml:"networks"`
	Overrides []overrideEntry         `toml:"overrides"`
}

type networkEntry struct {
	ChainID      uint64 `toml:"chain_id"`
	L2           bool   `toml:"l2"`
	TxServiceURL string `toml:"tx_service_url"`
}

type overrideEntry struct {
	Family  string `toml:"family"`
	ChainID uint64 `toml:"chain_id"`
	Address string `toml:"address"`
}

// loadEnvFiles loads .env then .env.local from the project root. Variables
// already present in the environment are kept.
func loadEnvFiles(projectRoot string) {
	for _, name := range []string{".env", ".env.local"} {
		envFile := filepath.Join(projectRoot, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
		}
	}
}

// loadFileConfig decodes the config file. A missing file yields an empty config.
func loadFileConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{}
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// networks converts [networks.<name>] tables, expanding environment variables
func (f *fileConfig) networks() (map[string]domain.Network, error) {
	networks := make(map[string]domain.Network, len(f.Networks))
	for name, entry := range f.Networks {
		if entry.ChainID == 0 {
			return nil, fmt.Errorf("network %s: %w: chain_id is required", name, domain.ErrUnknownNetwork)
		}
		networks[strings.ToLower(name)] = domain.Network{
			ChainID:      entry.ChainID,
			Name:         name,
			L2:           entry.L2,
			TxServiceURL: os.ExpandEnv(entry.TxServiceURL),
		}
	}
	return networks, nil
}

// overrides converts [[overrides]] entries
func (f *fileConfig) overrides() ([]domain.AddressOverride, error) {
	overrides := make([]domain.AddressOverride, 0, len(f.Overrides))
	for i, entry := range f.Overrides {
		family, err := domain.ParseContractFamily(entry.Family)
		if err != nil {
			return nil, fmt.Errorf("overrides[%d]: %w", i, err)
		}
		if entry.ChainID == 0 {
			return nil, fmt.Errorf("overrides[%d]: %w: chain_id is required", i, domain.ErrUnknownNetwork)
		}
		address := os.ExpandEnv(entry.Address)
		if !common.IsHexAddress(address) {
			return nil, fmt.Errorf("overrides[%d]: %w: %q", i, domain.ErrInvalidAddress, address)
		}
		overrides = append(overrides, domain.AddressOverride{
			Family:  family,
			ChainID: entry.ChainID,
			Address: common.HexToAddress(address),
		})
	}
	return overrides, nil
}
