package collab

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/deltaweave/deltaweave/pkg/delta"
)

// Config is the Hub's server configuration. The teacher has no config
// loader of its own (its demos hard-code an address); this is grounded
// on the pack's `yaml.v3` usage pattern instead, giving the expansion's
// collaboration server a real settings file.
type Config struct {
	// ListenAddr is the address the Hub's HTTP/WebSocket listener binds.
	ListenAddr string `yaml:"listen_addr"`
	// AllowedEmbedTypes restricts which embed types a session's
	// documents may contain; empty means no restriction.
	AllowedEmbedTypes []string `yaml:"allowed_embed_types,omitempty"`
	// HistoryLimit overrides DefaultHistoryLimit for new sessions.
	HistoryLimit int `yaml:"history_limit,omitempty"`
}

// DefaultConfig returns the Hub's out-of-the-box configuration.
func DefaultConfig() Config {
	return Config{
		ListenAddr:   ":8080",
		HistoryLimit: DefaultHistoryLimit,
	}
}

// LoadConfig reads and parses a YAML config file at path, filling in
// defaults for any field the file leaves zero.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("collab: reading config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("collab: parsing config %s: %w", path, err)
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultConfig().ListenAddr
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	return cfg, nil
}

// allows reports whether embedType is permitted under this config's
// allow-list (an empty list permits everything).
func (c Config) allows(embedType string) bool {
	if len(c.AllowedEmbedTypes) == 0 {
		return true
	}
	for _, t := range c.AllowedEmbedTypes {
		if t == embedType {
			return true
		}
	}
	return false
}

// validate rejects change if it carries an embed type not on the
// allow-list, before it ever reaches the algebra.
func (c Config) validate(change []delta.Op) error {
	if len(c.AllowedEmbedTypes) == 0 {
		return nil
	}
	for _, op := range change {
		embed, ok := op.Value.(delta.Embed)
		if !ok {
			continue
		}
		if t := embed.Type(); !c.allows(t) {
			return fmt.Errorf("collab: embed type %q is not in the allow-list", t)
		}
	}
	return nil
}
