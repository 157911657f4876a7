// Package template expands templee placeholders against records.
//
// A template is plain text containing any number of placeholders:
//
//	#{path}                    scalar: the value at path
//	@{open={path}close}        loop: open+item+close for every item of the
//	                           sequence at path
//	@[path]{text={sub}text}    block: each ={sub} is the value at sub inside
//	                           the mapping found at path
//
// The passes run in that order over the whole fragment. A loop written inside
// a block body is therefore expanded before the block and resolves against
// the record, not the block's mapping; use the full dotted path there, as in
// @[addr]{={city} @{<b>={addr.tags}</b>}}.
//
// Paths are dotted (see package path). Every template is expanded once per
// record and the results are concatenated in record order. Text that does
// not match a placeholder grammar is copied through unchanged; expansion has
// no failure mode.
//
// # Example
//
//	people := []types.Record{
//	    {"name": "John", "days": []interface{}{1, 10}},
//	    {"name": "Mike", "days": []interface{}{4, 8}},
//	}
//	out := template.Expand(people, `<p>#{name} @{<span>={days}</span>}</p>`)
//	// <p>John <span>1</span><span>10</span></p><p>Mike <span>4</span><span>8</span></p>
package template

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/elclanrs/templee/pkg/types"
)

var (
	scalarPattern = regexp.MustCompile(`#\{([^{}]+)\}`)
	loopPattern   = regexp.MustCompile(`@\{([^{}]*)=\{([^{}]+)\}([^{}]*)\}`)
	blockPattern  = regexp.MustCompile(`@\[([^\[\]{}]+)\]\{((?:[^{}]|\{[^{}]*\})*)\}`)
	// Inside a block the marker may also be written escaped, ={sub} or =\{sub\}.
	subPattern = regexp.MustCompile(`=\\?\{([^{}\\]+)\\?\}`)
	tagPattern = regexp.MustCompile(`^<(\w+)`)
)

// Engine expands templates. The zero value is not usable; create one with New.
// An Engine holds no per-call state and is safe for concurrent use.
type Engine struct {
	opts   Options
	logger *slog.Logger
}

// Options configures an Engine.
type Options struct {
	// Debug enables debug logging of every expansion.
	Debug bool
	// Logger for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Option configures engine behavior.
type Option func(*Options)

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

// New creates an Engine.
func New(opts ...Option) *Engine {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	return &Engine{opts: options, logger: options.Logger}
}

var defaultEngine = New()

// Expand expands fragments against records with the default engine.
func Expand(records []types.Record, fragments ...string) string {
	return defaultEngine.Expand(records, fragments...)
}

// Render expands fragments with the default engine and wraps the result.
func Render(records []types.Record, wrap string, fragments ...string) string {
	return defaultEngine.Render(records, wrap, fragments...)
}

// Expand expands every fragment against every record. For each record the
// fragment expansions are concatenated in order, and the per-record results
// are concatenated in record order with no separator.
func (e *Engine) Expand(records []types.Record, fragments ...string) string {
	var b strings.Builder
	for _, rec := range records {
		for _, frag := range fragments {
			b.WriteString(e.expandRecord(rec, frag))
		}
	}

	if e.opts.Debug {
		e.logger.Debug("template expanded",
			slog.Int("records", len(records)),
			slog.Int("fragments", len(fragments)),
			slog.Int("bytes", b.Len()))
	}
	return b.String()
}

// Render is Expand followed by Wrap.
func (e *Engine) Render(records []types.Record, wrap string, fragments ...string) string {
	return Wrap(wrap, e.Expand(records, fragments...))
}

// Wrap surrounds body with wrap and a closing tag named after wrap's opening
// tag, so Wrap(`<ul class="x">`, body) yields `<ul class="x">` + body + `</ul>`.
// When wrap does not start with a tag, body is returned unchanged.
func Wrap(wrap, body string) string {
	m := tagPattern.FindStringSubmatch(wrap)
	if m == nil {
		return body
	}
	return wrap + body + "</" + m[1] + ">"
}

// expandRecord runs the three substitution passes over one fragment.
func (e *Engine) expandRecord(rec types.Record, frag string) string {
	out := expandScalars(rec, frag)
	out = expandLoops(rec, out)
	return expandBlocks(rec, out)
}

func expandScalars(rec types.Record, s string) string {
	return replaceAllSubmatch(scalarPattern, s, func(m []string) string {
		return lookupString(rec, m[1])
	})
}

func expandLoops(rec types.Record, s string) string {
	return replaceAllSubmatch(loopPattern, s, func(m []string) string {
		prefix, key, suffix := m[1], strings.TrimSpace(m[2]), m[3]
		var b strings.Builder
		eachItem(lookup(rec, key), func(item interface{}) {
			b.WriteString(prefix)
			b.WriteString(types.ToString(item))
			b.WriteString(suffix)
		})
		return b.String()
	})
}

func expandBlocks(rec types.Record, s string) string {
	return replaceAllSubmatch(blockPattern, s, func(m []string) string {
		nested := lookup(rec, strings.TrimSpace(m[1]))
		return replaceAllSubmatch(subPattern, m[2], func(sm []string) string {
			return lookupString(nested, sm[1])
		})
	})
}

// replaceAllSubmatch is regexp.ReplaceAllStringFunc with access to the
// capture groups of each match.
func replaceAllSubmatch(re *regexp.Regexp, s string, fn func([]string) string) string {
	idx := re.FindAllStringSubmatchIndex(s, -1)
	if idx == nil {
		return s
	}

	var b strings.Builder
	last := 0
	for _, loc := range idx {
		b.WriteString(s[last:loc[0]])
		groups := make([]string, len(loc)/2)
		for g := range groups {
			if loc[2*g] >= 0 {
				groups[g] = s[loc[2*g]:loc[2*g+1]]
			}
		}
		b.WriteString(fn(groups))
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
