package ecs

import (
	"testing"

	"github.com/lixenwraith/goecs/entity"
)

func TestConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	if cfg.Traits != entity.Medium {
		t.Fatalf("expected default traits Medium, got %+v", cfg.Traits)
	}
	if cfg.InitialEntityCapacity != 0 {
		t.Fatalf("expected no capacity hint by default, got %d", cfg.InitialEntityCapacity)
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := NewConfig(WithTraits(entity.Small), WithInitialEntityCapacity(64))
	if cfg.Traits != entity.Small {
		t.Fatalf("expected Small traits, got %+v", cfg.Traits)
	}
	if cfg.InitialEntityCapacity != 64 {
		t.Fatalf("expected capacity 64, got %d", cfg.InitialEntityCapacity)
	}

	r := NewWithConfig(cfg)
	e := r.Create()
	if entity.Small.Index(e) != 0 {
		t.Fatalf("expected first entity index 0, got %d", entity.Small.Index(e))
	}
}
