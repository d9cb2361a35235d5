package config

import (
	"strconv"
	"strings"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// Environment variables read by [Load].
const (
	EnvWidth         = "WORDCLOUD_WIDTH"
	EnvHeight        = "WORDCLOUD_HEIGHT"
	EnvFontFamily    = "WORDCLOUD_FONT_FAMILY"
	EnvFontWeight    = "WORDCLOUD_FONT_WEIGHT"
	EnvMinSize       = "WORDCLOUD_MIN_SIZE"
	EnvMaxSize       = "WORDCLOUD_MAX_SIZE"
	EnvRotationRange = "WORDCLOUD_ROTATION_RANGE"
	EnvSpiral        = "WORDCLOUD_SPIRAL"
	EnvOrder         = "WORDCLOUD_ORDER"
	EnvSeed          = "WORDCLOUD_SEED"
	EnvMeasurer      = "WORDCLOUD_MEASURER"
	EnvFormats       = "WORDCLOUD_FORMATS"
	EnvBackground    = "WORDCLOUD_BACKGROUND"
	EnvPalette       = "WORDCLOUD_PALETTE"
	EnvCache         = "WORDCLOUD_CACHE"
	EnvCacheDir      = "WORDCLOUD_CACHE_DIR"
	EnvRedisURL      = "WORDCLOUD_REDIS_URL"
	EnvStoreDriver   = "WORDCLOUD_STORE_DRIVER"
	EnvStoreDSN      = "WORDCLOUD_STORE_DSN"
	EnvStoreDatabase = "WORDCLOUD_STORE_DATABASE"
	EnvAddr          = "WORDCLOUD_ADDR"
	EnvLogLevel      = "WORDCLOUD_LOG_LEVEL"
	EnvLogFormat     = "WORDCLOUD_LOG_FORMAT"
	EnvLogFile       = "WORDCLOUD_LOG_FILE"
)

type lookupFunc func(string) (string, bool)

type envReader struct {
	lookup lookupFunc
	err    error
}

func (r *envReader) get(name string) (string, bool) {
	v, ok := r.lookup(name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (r *envReader) str(name string, dst *string) {
	if v, ok := r.get(name); ok {
		*dst = v
	}
}

func (r *envReader) lower(name string, dst *string) {
	if v, ok := r.get(name); ok {
		*dst = strings.ToLower(v)
	}
}

func (r *envReader) list(name string, dst *[]string) {
	v, ok := r.get(name)
	if !ok {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*dst = out
}

func (r *envReader) intVar(name string, dst *int) {
	v, ok := r.get(name)
	if !ok || r.err != nil {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.err = errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", name)
		return
	}
	*dst = n
}

func (r *envReader) uintVar(name string, dst *uint64) {
	v, ok := r.get(name)
	if !ok || r.err != nil {
		return
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		r.err = errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", name)
		return
	}
	*dst = n
}

func (r *envReader) floatVar(name string, dst *float64) {
	v, ok := r.get(name)
	if !ok || r.err != nil {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.err = errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", name)
		return
	}
	*dst = f
}

// applyEnvOverrides sets every field whose variable is present and
// non-empty. The first malformed number is returned as INVALID_CONFIG.
func applyEnvOverrides(cfg *Config, lookup lookupFunc) error {
	r := &envReader{lookup: lookup}

	r.intVar(EnvWidth, &cfg.Layout.Width)
	r.intVar(EnvHeight, &cfg.Layout.Height)
	r.str(EnvFontFamily, &cfg.Layout.FontFamily)
	r.lower(EnvFontWeight, &cfg.Layout.FontWeight)
	r.floatVar(EnvMinSize, &cfg.Layout.MinSize)
	r.floatVar(EnvMaxSize, &cfg.Layout.MaxSize)
	r.floatVar(EnvRotationRange, &cfg.Layout.RotationRange)
	r.lower(EnvSpiral, &cfg.Layout.Spiral)
	r.lower(EnvOrder, &cfg.Layout.Order)
	r.uintVar(EnvSeed, &cfg.Layout.Seed)
	r.lower(EnvMeasurer, &cfg.Layout.Measurer)

	r.list(EnvFormats, &cfg.Render.Formats)
	r.str(EnvBackground, &cfg.Render.Background)
	r.list(EnvPalette, &cfg.Render.Palette)

	r.lower(EnvCache, &cfg.Cache.Backend)
	r.str(EnvCacheDir, &cfg.Cache.Dir)
	if _, ok := r.get(EnvRedisURL); ok {
		r.str(EnvRedisURL, &cfg.Cache.Redis.URL)
		if _, set := r.get(EnvCache); !set {
			cfg.Cache.Backend = CacheRedis
		}
	}

	r.lower(EnvStoreDriver, &cfg.Store.Driver)
	r.str(EnvStoreDSN, &cfg.Store.DSN)
	r.str(EnvStoreDatabase, &cfg.Store.Database)

	r.str(EnvAddr, &cfg.Server.Addr)

	r.lower(EnvLogLevel, &cfg.Logging.Level)
	r.lower(EnvLogFormat, &cfg.Logging.Format)
	r.str(EnvLogFile, &cfg.Logging.File)

	return r.err
}

// EnvOverrides lists the variables from this package that are currently set.
func EnvOverrides(lookup func(string) (string, bool)) []string {
	var set []string
	r := &envReader{lookup: lookup}
	for _, name := range []string{
		EnvWidth, EnvHeight, EnvFontFamily, EnvFontWeight, EnvMinSize, EnvMaxSize,
		EnvRotationRange, EnvSpiral, EnvOrder, EnvSeed, EnvMeasurer,
		EnvFormats, EnvBackground, EnvPalette,
		EnvCache, EnvCacheDir, EnvRedisURL,
		EnvStoreDriver, EnvStoreDSN, EnvStoreDatabase,
		EnvAddr, EnvLogLevel, EnvLogFormat, EnvLogFile,
	} {
		if _, ok := r.get(name); ok {
			set = append(set, name)
		}
	}
	return set
}
