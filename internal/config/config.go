// Package config loads the node's JSON configuration file and applies
// environment overrides on top of it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the full set of settings the node reads at startup.
type Config struct {
	Node       NodeConfig       `json:"node"`
	Store      StoreConfig      `json:"store"`
	Checkpoint CheckpointConfig `json:"checkpoint"`
	RPC        RPCConfig        `json:"rpc"`
	Log        LogConfig        `json:"log"`
}

// NodeConfig holds node identity and data directory settings.
type NodeConfig struct {
	DataDir string `json:"data_dir"`
}

// StoreConfig selects and configures the MMR's backing store.
type StoreConfig struct {
	// Kind is "memory" or "azblob". Anything else is a configuration error.
	Kind          string `json:"kind"`
	ContainerURL  string `json:"container_url,omitempty"`
	ContainerName string `json:"container_name,omitempty"`
}

// CheckpointConfig controls how often the node signs and publishes a root.
type CheckpointConfig struct {
	EveryNBlocks uint64 `json:"every_n_blocks"`
	KeyPath      string `json:"key_path,omitempty"`
}

// RPCConfig controls the JSON-RPC listener.
type RPCConfig struct {
	ListenAddr string `json:"listen_addr"`
}

// LogConfig controls the process-wide logger.
type LogConfig struct {
	Level string `json:"level"`
	JSON  bool   `json:"json"`
}

// Default returns a config with sensible defaults: in-memory store, no
// checkpointing, loopback RPC, info level console logging.
func Default() *Config {
	return &Config{
		Node: NodeConfig{
			DataDir: ".meridian",
		},
		Store: StoreConfig{
			Kind: "memory",
		},
		Checkpoint: CheckpointConfig{
			EveryNBlocks: 0,
		},
		RPC: RPCConfig{
			ListenAddr: "127.0.0.1:8645",
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

// Load reads path as JSON over the defaults, then applies environment
// variable overrides (MERIDIAN_DATA_DIR, MERIDIAN_RPC_ADDR,
// MERIDIAN_LOG_LEVEL). A missing file is not an error: Load returns the
// defaults (plus any environment overrides) unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MERIDIAN_DATA_DIR"); v != "" {
		cfg.Node.DataDir = v
	}
	if v := os.Getenv("MERIDIAN_RPC_ADDR"); v != "" {
		cfg.RPC.ListenAddr = v
	}
	if v := os.Getenv("MERIDIAN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Save writes cfg to path as indented JSON, creating the file if absent.
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
