package ecs

import "github.com/lixenwraith/goecs/entity"

// Config holds construction-time settings for a Registry — the entity size
// profile and capacity hints — plain data in the same spirit as the
// teacher's ConfigResource/RenderConfig (engine/resources.go): no file
// format or flag parsing lives here, just a struct built with functional
// defaults.
type Config struct {
	// Traits selects the entity handle's index/version bit split
	// (entity.Small, entity.Medium, or entity.Large).
	Traits entity.Traits

	// InitialEntityCapacity hints the handle allocator's initial backing
	// array size, avoiding early reallocation for callers who know roughly
	// how many entities they'll create.
	InitialEntityCapacity int
}

// Option mutates a Config being built by NewConfig.
type Option func(*Config)

// WithTraits overrides the entity size profile. Default is entity.Medium.
func WithTraits(t entity.Traits) Option {
	return func(c *Config) { c.Traits = t }
}

// WithInitialEntityCapacity hints the expected entity count up front.
func WithInitialEntityCapacity(n int) Option {
	return func(c *Config) { c.InitialEntityCapacity = n }
}

// NewConfig builds a Config from the given options, starting from defaults
// (entity.Medium traits, no capacity hint).
func NewConfig(opts ...Option) Config {
	c := Config{Traits: entity.Medium}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// NewWithConfig creates a Registry from a Config, pre-growing the handle
// allocator to InitialEntityCapacity when set.
func NewWithConfig(cfg Config) *Registry {
	r := New(cfg.Traits)
	if cfg.InitialEntityCapacity > 0 {
		r.allocator.Reserve(cfg.InitialEntityCapacity)
	}
	return r
}
