package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gochat/internal/client/realtime"
	"github.com/dmitrijs2005/gochat/internal/common"
	"github.com/dmitrijs2005/gochat/internal/logging"
)

const (
	VaultKeyring = "keyring"
	VaultMemory  = "memory"
)

// Config holds runtime settings for the GoChat client.
//
// Fields:
//   - APIBaseURL: base URL of the REST API (register, login, profile...).
//   - RealtimeURL: websocket URL opened after login.
//   - AuthMode: "cookie" (server session cookie) or "token" (bearer token
//     kept in the OS keychain).
//   - Env: logging environment (local, dev, prod).
//   - SessionCheckInterval: how often the shell re-validates the session.
//     Zero disables the check.
type Config struct {
	APIBaseURL           string
	RealtimeURL          string
	AuthMode             common.AuthMode
	Env                  string
	RequestTimeout       time.Duration
	SessionCheckInterval time.Duration

	Vault     VaultConfig
	Realtime  realtime.Config
	Reconnect realtime.Policy
}

// VaultConfig selects where the credential is stored in token mode.
type VaultConfig struct {
	Backend string
	Service string
	Account string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8081"
	c.RealtimeURL = "ws://localhost:8081/ws/general"
	c.AuthMode = common.AuthModeCookie
	c.Env = logging.EnvLocal
	c.RequestTimeout = 10 * time.Second
	c.SessionCheckInterval = 30 * time.Second
	c.Vault = VaultConfig{
		Backend: VaultKeyring,
		Service: common.VaultService,
		Account: common.VaultAccount,
	}
	c.Realtime = realtime.DefaultConfig()
	c.Reconnect = realtime.DefaultPolicy()
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch {
	case c.APIBaseURL == "":
		return errors.New("config: api base url is empty")
	case c.RealtimeURL == "":
		return errors.New("config: realtime url is empty")
	case !c.AuthMode.Valid():
		return fmt.Errorf("config: unknown auth mode %q", c.AuthMode)
	case c.Vault.Backend != VaultKeyring && c.Vault.Backend != VaultMemory:
		return fmt.Errorf("config: unknown vault backend %q", c.Vault.Backend)
	case c.RequestTimeout < 0 || c.SessionCheckInterval < 0:
		return errors.New("config: negative interval")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
