package main

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.design/x/clipboard"
)

var clipboardOnce sync.Once
var clipboardReady bool

// copyDebugSnapshot puts a plain-text dump of the battle state on the
// OS clipboard. Debug aid for pasting into bug reports.
func (g *Game) copyDebugSnapshot() {
	clipboardOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			log.Printf("game: clipboard unavailable: %v", err)
			return
		}
		clipboardReady = true
	})
	if !clipboardReady {
		return
	}

	e := g.encounter
	var b strings.Builder
	fmt.Fprintf(&b, "frame=%d state=%s prev=%s turn=%d\n", g.frames, e.Machine.State(), e.Machine.Previous(), e.Turn())
	fmt.Fprintf(&b, "player hp=%g/%g soul=(%.1f, %.1f) mode=%s invincible=%v\n",
		e.HP, e.MaxHP, e.Soul.Pos.X, e.Soul.Pos.Y, e.Soul.Mode().Name(), e.Soul.Invincible())
	fmt.Fprintf(&b, "enemy %s hp=%g/%g mercy=%g\n", e.Enemy.Name, e.Enemy.HP, e.Enemy.MaxHP, e.Enemy.Mercy)
	if p := e.CurrentPattern(); p != nil {
		fmt.Fprintf(&b, "pattern %s\n", p)
		for _, o := range p.Live() {
			bb := o.Bounds()
			fmt.Fprintf(&b, "  %s bb=(%.0f,%.0f,%.0f,%.0f) dmg=%g\n", o.Kind(), bb.L, bb.B, bb.R, bb.T, o.Damage())
		}
	}

	clipboard.Write(clipboard.FmtText, []byte(b.String()))
}
