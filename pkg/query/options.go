package query

import (
	"log/slog"

	"github.com/elclanrs/templee/pkg/cache"
	"github.com/elclanrs/templee/pkg/template"
)

// Options configures a Collection and every collection derived from it.
type Options struct {
	// Engine expands templates for HTML. Defaults to a template.New engine
	// sharing Logger and Debug.
	Engine *template.Engine
	// Cache holds the anchored patterns Is builds for literals. Defaults to
	// a shared package-level cache.
	Cache *cache.Cache
	// Debug enables debug logging.
	Debug bool
	// Logger for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Option configures collection behavior.
type Option func(*Options)

// WithEngine sets the template engine used by HTML and HTMLParts.
func WithEngine(engine *template.Engine) Option {
	return func(opts *Options) {
		opts.Engine = engine
	}
}

// WithCache sets the literal pattern cache used by Is.
func WithCache(c *cache.Cache) Option {
	return func(opts *Options) {
		opts.Cache = c
	}
}

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) Option {
	return func(opts *Options) {
		opts.Debug = enabled
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

var sharedCache = cache.New(cache.DefaultCapacity)

func buildOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Cache == nil {
		options.Cache = sharedCache
	}
	if options.Engine == nil {
		options.Engine = template.New(
			template.WithLogger(options.Logger),
			template.WithDebug(options.Debug),
		)
	}
	return options
}
