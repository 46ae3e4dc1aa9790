package config

import (
	"flag"
	"os"

	"github.com/drawlabs/luckyadmin/internal/flagx"
)

// parseFlags overlays cfg with command-line flags. Only the flags owned by
// this pass are considered; -c/-config was consumed by the JSON layer.
//
//	-a string   base URL of the backend API
//	-t int      request timeout in seconds
//	-d string   directory for exported files
//	-l string   log level (debug|info|warn|error)
//	-n int      default page size for list commands
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-l", "-n"})

	fs := flag.NewFlagSet("luckyadmin", flag.ContinueOnError)
	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	fs.IntVar(&cfg.RequestTimeoutSeconds, "t", cfg.RequestTimeoutSeconds, "request timeout (seconds)")
	fs.StringVar(&cfg.DownloadDir, "d", cfg.DownloadDir, "directory for exported files")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.IntVar(&cfg.PageLimit, "n", cfg.PageLimit, "default page size for list commands")

	_ = fs.Parse(args)
}
