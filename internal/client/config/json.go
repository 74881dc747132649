package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/gochat/internal/common"
	"github.com/dmitrijs2005/gochat/internal/flagx"
	"github.com/dmitrijs2005/gochat/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Pointer fields distinguish "absent" from "zero", so a partial file only
// overrides the keys it names.
type JsonConfig struct {
	APIBaseURL           *string         `json:"api_base_url"`
	RealtimeURL          *string         `json:"realtime_url"`
	AuthMode             *string         `json:"auth_mode"`
	Env                  *string         `json:"env"`
	RequestTimeout       *timex.Duration `json:"request_timeout"`
	SessionCheckInterval *timex.Duration `json:"session_check_interval"`

	Vault *struct {
		Backend *string `json:"backend"`
		Service *string `json:"service"`
		Account *string `json:"account"`
	} `json:"vault"`

	Realtime *struct {
		DialTimeout    *timex.Duration `json:"dial_timeout"`
		PongWait       *timex.Duration `json:"pong_wait"`
		PingPeriod     *timex.Duration `json:"ping_period"`
		WriteWait      *timex.Duration `json:"write_wait"`
		MaxMessageSize *int64          `json:"max_message_size"`
	} `json:"realtime"`

	Reconnect *struct {
		MaxAttempts   *uint64         `json:"max_attempts"`
		BaseDelay     *timex.Duration `json:"base_delay"`
		MaxDelay      *timex.Duration `json:"max_delay"`
		JitterPercent *uint64         `json:"jitter_percent"`
	} `json:"reconnect"`
}

// parseJson overlays cfg with values loaded from the JSON file named by -c
// or -config in args. Without either flag nothing is loaded.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	jc.apply(cfg)
	return nil
}

func (jc *JsonConfig) apply(cfg *Config) {
	set(&cfg.APIBaseURL, jc.APIBaseURL)
	set(&cfg.RealtimeURL, jc.RealtimeURL)
	if jc.AuthMode != nil {
		cfg.AuthMode = common.AuthMode(*jc.AuthMode)
	}
	set(&cfg.Env, jc.Env)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setDuration(&cfg.SessionCheckInterval, jc.SessionCheckInterval)

	if v := jc.Vault; v != nil {
		set(&cfg.Vault.Backend, v.Backend)
		set(&cfg.Vault.Service, v.Service)
		set(&cfg.Vault.Account, v.Account)
	}

	if rt := jc.Realtime; rt != nil {
		setDuration(&cfg.Realtime.DialTimeout, rt.DialTimeout)
		setDuration(&cfg.Realtime.PongWait, rt.PongWait)
		setDuration(&cfg.Realtime.PingPeriod, rt.PingPeriod)
		setDuration(&cfg.Realtime.WriteWait, rt.WriteWait)
		set(&cfg.Realtime.MaxMessageSize, rt.MaxMessageSize)
	}

	if rc := jc.Reconnect; rc != nil {
		set(&cfg.Reconnect.MaxAttempts, rc.MaxAttempts)
		setDuration(&cfg.Reconnect.BaseDelay, rc.BaseDelay)
		setDuration(&cfg.Reconnect.MaxDelay, rc.MaxDelay)
		set(&cfg.Reconnect.JitterPercent, rc.JitterPercent)
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *timex.Duration) {
	if src != nil {
		*dst = src.Duration
	}
}
