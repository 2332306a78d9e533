package config

import (
	"strconv"
	"strings"
)

// lookupFunc matches os.LookupEnv.
type lookupFunc func(key string) (string, bool)

// parseEnv overlays OUTFITAI_* environment variables. Empty values are ignored.
func parseEnv(config *Config, lookup lookupFunc) {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("OUTFITAI_ADDR"); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := get("OUTFITAI_DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := get("OUTFITAI_SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := get("OUTFITAI_PRODUCTION"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Production = b
		}
	}
	if v, ok := get("OUTFITAI_ALLOWED_ORIGINS"); ok {
		config.AllowedOrigins = splitList(v)
	}
	if v, ok := get("OUTFITAI_PUBLIC_BASE_URL"); ok {
		config.PublicBaseURL = v
	}
	if v, ok := get("OUTFITAI_S3_ROOT_USER"); ok {
		config.S3RootUser = v
	}
	if v, ok := get("OUTFITAI_S3_ROOT_PASSWORD"); ok {
		config.S3RootPassword = v
	}
	if v, ok := get("OUTFITAI_S3_BUCKET"); ok {
		config.S3Bucket = v
	}
	if v, ok := get("OUTFITAI_S3_REGION"); ok {
		config.S3Region = v
	}
	if v, ok := get("OUTFITAI_S3_BASE_ENDPOINT"); ok {
		config.S3BaseEndpoint = v
	}
	if v, ok := get("OUTFITAI_S3_PUBLIC_URL"); ok {
		config.S3PublicURL = v
	}
	if v, ok := get("OUTFITAI_AI_API_KEY"); ok {
		config.AIAPIKey = v
	}
	if v, ok := get("OUTFITAI_AI_MODEL"); ok {
		config.AIModel = v
	}
	if v, ok := get("OUTFITAI_LOG_FORMAT"); ok {
		config.LogFormat = v
	}
}

// splitList turns "a, b,,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
