// Package codegen issues sticker codes of the form <PREFIX>-<YY>-<XXXXXX>.
//
// Codes draw from a 32-symbol alphabet without the visually ambiguous
// characters 0, O, 1 and I. Each candidate is checked against the sticker
// store; after MaxAttempts collisions the last candidate is returned anyway
// and the caller relies on the store's unique constraint.
package codegen

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	Alphabet           = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	SuffixLength       = 6
	DefaultPrefix      = "NVH"
	DefaultMaxAttempts = 5
)

// ExistenceChecker reports whether a code is already issued.
type ExistenceChecker interface {
	CodeExists(ctx context.Context, code string) (bool, error)
}

// Result describes a generated code.
type Result struct {
	Code     string
	Attempts int
	// Collided is true when every attempt collided and the last candidate was
	// accepted regardless.
	Collided bool
}

// Generator produces sticker codes.
type Generator struct {
	checker     ExistenceChecker
	prefix      string
	maxAttempts int
	random      io.Reader
}

type Option func(*Generator)

func WithPrefix(prefix string) Option {
	return func(g *Generator) {
		if p := strings.ToUpper(strings.TrimSpace(prefix)); p != "" {
			g.prefix = p
		}
	}
}

func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// WithRandom replaces crypto/rand as the byte source.
func WithRandom(r io.Reader) Option {
	return func(g *Generator) {
		if r != nil {
			g.random = r
		}
	}
}

func New(checker ExistenceChecker, opts ...Option) *Generator {
	g := &Generator{
		checker:     checker,
		prefix:      DefaultPrefix,
		maxAttempts: DefaultMaxAttempts,
		random:      rand.Reader,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a code for a sticker issued at now. Existence-check errors
// abort generation; collisions only trigger another attempt.
func (g *Generator) Generate(ctx context.Context, now time.Time) (Result, error) {
	var candidate string
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		suffix, err := g.suffix()
		if err != nil {
			return Result{}, fmt.Errorf("generate sticker code: %w", err)
		}
		candidate = Format(g.prefix, now, suffix)

		exists, err := g.checker.CodeExists(ctx, candidate)
		if err != nil {
			return Result{}, fmt.Errorf("check sticker code: %w", err)
		}
		if !exists {
			return Result{Code: candidate, Attempts: attempt}, nil
		}
	}
	return Result{Code: candidate, Attempts: g.maxAttempts, Collided: true}, nil
}

// Format assembles a code from its parts; the year is the last two digits of now.
func Format(prefix string, now time.Time, suffix string) string {
	return fmt.Sprintf("%s-%02d-%s", prefix, now.Year()%100, suffix)
}

// 256 is a multiple of 32, so byte%32 is unbiased.
func (g *Generator) suffix() (string, error) {
	buf := make([]byte, SuffixLength)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = Alphabet[int(b)%len(Alphabet)]
	}
	return string(buf), nil
}
