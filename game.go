package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/battlebox/battle"
	"github.com/milk9111/battlebox/config"
	"github.com/milk9111/battlebox/input"
	"github.com/milk9111/battlebox/prefabs"
)

type Game struct {
	cfg   *config.Config
	arena cp.BB

	frames    int
	input     *input.Input
	encounter *battle.Encounter
	menu      *MenuUI

	watcher *prefabs.Watcher
}

func NewGame(cfg *config.Config) (*Game, error) {
	arena := cp.BB{
		L: cfg.ArenaX,
		B: cfg.ArenaY,
		R: cfg.ArenaX + cfg.ArenaWidth,
		T: cfg.ArenaY + cfg.ArenaHeight,
	}

	g := &Game{
		cfg:   cfg,
		arena: arena,
		input: input.New(),
	}
	if err := g.loadEncounter(); err != nil {
		return nil, err
	}

	if cfg.Debug {
		w, err := prefabs.NewWatcher("prefabs/enemies", "prefabs/scripts")
		if err != nil {
			log.Printf("game: prefab watcher disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// loadEncounter builds a fresh fight from the configured enemy spec.
func (g *Game) loadEncounter() error {
	spec, err := prefabs.LoadEncounterSpec(g.cfg.Enemy)
	if err != nil {
		return err
	}

	enc := battle.NewEncounter(prefabs.BuildEnemy(spec), prefabs.BuildPatterns(spec), g.arena)
	enc.HP = g.cfg.StartingHP
	enc.MaxHP = g.cfg.StartingHP
	enc.Items = prefabs.BuildItems(spec)
	enc.Soul.Speed = g.cfg.SoulSpeed
	enc.SetSoulMode(prefabs.BuildSoulMode(spec, g.arena))
	enc.Arbiter.InvincibilityFrames = g.cfg.InvincibilityFrames

	g.encounter = enc
	g.menu = NewMenuUI(enc, g.cfg)
	enc.Begin()
	return nil
}

func (g *Game) Update() error {
	g.frames++

	g.input.Update()
	in := g.input.State()

	g.drainWatcher()

	if in.CancelPressed {
		g.encounter.CancelSubmenu()
	}
	g.encounter.Update(in)
	g.menu.Update()

	if g.cfg.Debug && ebiten.IsKeyPressed(ebiten.KeyF2) {
		g.copyDebugSnapshot()
	}
	return nil
}

// drainWatcher rebuilds the encounter when a spec or script changed on
// disk. Debug only; a reload failure keeps the running fight.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	reload := false
	for {
		select {
		case ch, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("game: %s %s changed, reloading", ch.Kind, ch.Name)
			reload = true
		case err := <-g.watcher.Errors:
			log.Printf("game: prefab watcher: %v", err)
		default:
			if reload {
				if err := g.loadEncounter(); err != nil {
					log.Printf("game: reload failed: %v", err)
				}
			}
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.encounter.Draw(screen)
	g.menu.Draw(screen)

	if g.cfg.Debug {
		state := g.encounter.Machine.State()
		live := 0
		if p := g.encounter.CurrentPattern(); p != nil {
			live = p.LiveCount()
		}
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS %.1f  state %s  live %d", ebiten.ActualFPS(), state, live))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.WindowWidth, g.cfg.WindowHeight
}
