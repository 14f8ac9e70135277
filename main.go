package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/battlebox/config"
)

func main() {
	enemyName := flag.String("enemy", "", "encounter name in prefabs/enemies (overrides config)")
	debug := flag.Bool("debug", false, "enable debug overlay, hot reload, and F2 state snapshot")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if *enemyName != "" {
		cfg.Enemy = *enemyName
	}
	if *debug {
		cfg.Debug = true
	}

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle(cfg.Title)

	game, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
