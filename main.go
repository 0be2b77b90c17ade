package main

import (
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/automoto/platformkit/config"
	"github.com/automoto/platformkit/game"
)

func main() {
	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle(config.C.Title)

	g, err := game.New(os.DirFS("assets"), "levels/sandbox.tmx", 96, 96)
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
