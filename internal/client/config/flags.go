package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/loopin/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags. Only
// the flags listed here are passed to the flag set.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-q", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	quietPeriod := fs.Int("q", int(cfg.QuietPeriod.Milliseconds()), "username check quiet period (in milliseconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local session database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		case "q":
			cfg.QuietPeriod = time.Duration(*quietPeriod) * time.Millisecond
		}
	})
}
