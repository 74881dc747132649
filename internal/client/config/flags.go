package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gochat/internal/common"
	"github.com/dmitrijs2005/gochat/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the REST API
//	-w string   realtime websocket URL
//	-m string   auth mode (cookie|token)
//	-e string   logging environment (local|dev|prod)
//	-t int      request timeout in seconds
//	-i int      session check interval in seconds
//	-v string   vault backend (keyring|memory)
//
// args is filtered with flagx.FilterArgs first, so flags owned by other
// components (-c) do not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-w", "-m", "-e", "-t", "-i", "-v"})

	fs := flag.NewFlagSet("gochat", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the REST API")
	fs.StringVar(&cfg.RealtimeURL, "w", cfg.RealtimeURL, "realtime websocket URL")
	mode := fs.String("m", string(cfg.AuthMode), "auth mode: cookie or token")
	fs.StringVar(&cfg.Env, "e", cfg.Env, "logging environment: local, dev or prod")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	checkInterval := fs.Int("i", int(cfg.SessionCheckInterval.Seconds()), "session check interval (in seconds)")
	fs.StringVar(&cfg.Vault.Backend, "v", cfg.Vault.Backend, "credential vault: keyring or memory")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.AuthMode = common.AuthMode(*mode)

	// Only overwrite durations that were given explicitly; the int
	// round-trip would otherwise truncate sub-second values from JSON.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		case "i":
			cfg.SessionCheckInterval = time.Duration(*checkInterval) * time.Second
		}
	})
	return nil
}
