//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"micro-life/internal/app"
	"micro-life/internal/config"
)

func main() {
	cfg := config.New()
	cfg.Bind(flag.CommandLine)
	scale := flag.Int("scale", 5, "pixel scale multiplier")
	flag.Parse()
	if err := cfg.Resolve(flag.CommandLine); err != nil {
		log.Fatalf("config: %v", err)
	}

	game := app.NewGame(cfg, *scale)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("Micro Game of Life")
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
	fmt.Println("Program stopped.")
}
