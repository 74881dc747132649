// Package config loads runtime configuration for the GoChat client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST API
//	-w string   websocket URL of the realtime channel
//	-m string   auth mode: cookie or token
//	-e string   logging environment: local, dev or prod
//	-t int      HTTP request timeout (seconds)
//	-i int      session re-validation interval (seconds, 0 disables)
//	-v string   credential vault backend: keyring or memory
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds. Absent keys keep their defaults:
//
//	{
//	  "api_base_url": "http://localhost:8081",
//	  "realtime_url": "ws://localhost:8081/ws/general",
//	  "auth_mode": "cookie",
//	  "env": "local",
//	  "request_timeout": "10s",
//	  "session_check_interval": "30s",
//	  "vault": {"backend": "keyring", "service": "GoChat", "account": "userToken"},
//	  "realtime": {"dial_timeout": "10s", "pong_wait": "60s", "ping_period": "54s",
//	               "write_wait": "10s", "max_message_size": 65536},
//	  "reconnect": {"max_attempts": 5, "base_delay": "500ms", "max_delay": "30s",
//	                "jitter_percent": 20}
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
