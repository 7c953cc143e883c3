// Command goecs-demo is a small terminal demo exercising the domain stack
// SPEC_FULL.md §3 calls for: a falling-glyph field driven entirely through
// goecs views, rendered with tcell and punctuated by a beep-generated
// tone, styled after the teacher's own main.go (tcell.Screen setup, a
// beep.SampleRate + generators.SineTone hit sound) but driven by an ecs
// Registry instead of hand-rolled character/trail slices.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/goecs/ecs"
	"github.com/lixenwraith/goecs/entity"
)

// Position is an entity's on-screen location, in fractional cells so
// Velocity can accumulate sub-cell motion between ticks.
type Position struct {
	X, Y float64
}

// Velocity is the downward fall speed, in cells per second.
type Velocity struct {
	DY float64
}

// Glyph is what gets drawn at an entity's Position.
type Glyph struct {
	Rune  rune
	Style tcell.Style
}

const sampleRate = beep.SampleRate(44100)

func main() {
	entityCount := flag.Int("entities", 40, "number of falling glyphs")
	duration := flag.Duration("duration", 6*time.Second, "how long to run before exiting")
	silent := flag.Bool("silent", false, "disable the landing tone")
	flag.Parse()

	if err := run(*entityCount, *duration, !*silent); err != nil {
		log.Fatal(err)
	}
}

func run(entityCount int, runFor time.Duration, audio bool) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("goecs-demo: new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("goecs-demo: init screen: %w", err)
	}
	defer screen.Fini()

	if audio {
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			log.Printf("goecs-demo: audio disabled, speaker init failed: %v", err)
			audio = false
		}
		defer speaker.Close()
	}

	width, height := screen.Size()
	registry := ecs.NewWithConfig(ecs.NewConfig(ecs.WithInitialEntityCapacity(entityCount)))
	spawnField(registry, entityCount, width, height)

	quit := make(chan struct{})
	go pollQuit(screen, quit)

	const tickRate = 30 * time.Millisecond
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	deadline := time.Now().Add(runFor)
	for {
		select {
		case <-quit:
			return nil
		case now := <-ticker.C:
			if now.After(deadline) {
				return nil
			}
			dt := tickRate.Seconds()
			advance(registry, dt, height, audio)
			render(screen, registry, width, height)
		}
	}
}

func spawnField(r *ecs.Registry, n, width, height int) {
	for i := 0; i < n; i++ {
		e := r.NewEntity()
		ecs.With(e, Position{X: float64(rand.Intn(width)), Y: float64(-rand.Intn(height))})
		ecs.With(e, Velocity{DY: 2 + rand.Float64()*6})
		ecs.With(e, Glyph{Rune: randomGlyph(), Style: tcell.StyleDefault.Foreground(tcell.ColorGreen)})
		e.Build()
	}
}

func randomGlyph() rune {
	const set = "01"
	return rune(set[rand.Intn(len(set))])
}

// advance is the per-tick system pass: move every Position+Velocity entity,
// and recycle any that fall off the bottom of the screen back to the top —
// the same Each2 typed-view sugar iterate.go's doc comments describe as
// grounded on Swedeachu-go_ecs's Iterate2 pattern, here doing actual simulation
// work instead of being exercised only by tests.
func advance(r *ecs.Registry, dt float64, height int, audio bool) {
	var landed bool
	ecs.Each2(r, func(e entity.Entity, pos *Position, vel *Velocity) {
		pos.Y += vel.DY * dt
		if int(pos.Y) >= height {
			pos.Y = 0
			landed = true
		}
	})
	if landed && audio {
		playLandingTone()
	}
}

func render(screen tcell.Screen, r *ecs.Registry, width, height int) {
	screen.Clear()
	ecs.Each2(r, func(e entity.Entity, pos *Position, g *Glyph) {
		x, y := int(pos.X), int(pos.Y)
		if x < 0 || x >= width || y < 0 || y >= height {
			return
		}
		screen.SetContent(x, y, g.Rune, nil, g.Style)
	})
	screen.Show()
}

func playLandingTone() {
	sine, err := generators.SineTone(sampleRate, 880)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(40*time.Millisecond), sine))
}

func pollQuit(screen tcell.Screen, quit chan struct{}) {
	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				close(quit)
				return
			}
		case nil:
			return
		}
	}
}
