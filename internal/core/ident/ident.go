// Package ident produces unique task identifiers.
//
// Identifiers come from a cryptographically random UUID source. When that
// source is unavailable the generator falls back to "<unix-ms>-<hex>", which
// carries a negligible collision risk.
package ident

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/colonyops/tick/pkg/randid"
)

// fallbackSuffixLen is the hex width of the random part of a fallback id.
const fallbackSuffixLen = 12

// IDGenerator produces identifiers that are unique for practical purposes,
// across restarts as well as within one process.
type IDGenerator interface {
	Generate() string
}

// Func adapts a plain function to IDGenerator.
type Func func() string

// Generate calls f.
func (f Func) Generate() string { return f() }

// Generator is the default IDGenerator.
type Generator struct {
	source func() (uuid.UUID, error)
	now    func() time.Time
}

var _ IDGenerator = (*Generator)(nil)

// Option configures a Generator.
type Option func(*Generator)

// WithSource overrides the UUID source. A source that returns an error
// forces the timestamp fallback.
func WithSource(source func() (uuid.UUID, error)) Option {
	return func(g *Generator) { g.source = source }
}

// WithClock overrides the clock used by the fallback scheme.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New returns a Generator backed by uuid.NewRandom.
func New(opts ...Option) *Generator {
	g := &Generator{
		source: uuid.NewRandom,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a new identifier. It never fails.
func (g *Generator) Generate() string {
	if g.source != nil {
		if id, err := g.source(); err == nil {
			return id.String()
		}
	}

	return fmt.Sprintf("%d-%s", g.now().UnixMilli(), randid.Hex(fallbackSuffixLen))
}
