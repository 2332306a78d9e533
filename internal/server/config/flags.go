package config

import (
	"flag"
	"strings"
	"time"

	"github.com/outfitai/outfitai/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   token HMAC secret key
//	-t int      token validity, minutes
//	-prod       production cookies (Secure, SameSite=None)
//	-o string   comma-separated allowed origins
//	-base string public base URL for share links
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-k string   AI API key
//	-m string   AI model name
//	-l string   log format: json | console
//
// Unknown flags (including -c/-config, handled by parseJson) are filtered out
// with flagx.FilterArgs before parsing.
func parseFlags(config *Config, argv []string) {
	args := flagx.FilterArgs(argv,
		[]string{"-a", "-d", "-s", "-t", "-prod", "-o", "-base", "-u", "-p", "-b", "-g", "-e", "-k", "-m", "-l"},
		"-prod")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")

	fs.BoolVar(&config.Production, "prod", config.Production, "production mode (secure cross-site cookies)")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "allowed origins, comma separated")
	fs.StringVar(&config.PublicBaseURL, "base", config.PublicBaseURL, "public base URL")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.AIAPIKey, "k", config.AIAPIKey, "AI API key")
	fs.StringVar(&config.AIModel, "m", config.AIModel, "AI model")
	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format (json|console)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
	config.AllowedOrigins = splitList(*origins)
}
