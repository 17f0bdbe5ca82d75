package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"micro-life/internal/app"
	"micro-life/internal/board"
	"micro-life/internal/config"
	"micro-life/internal/core"
)

func main() {
	cfg := config.New()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if err := cfg.Resolve(flag.CommandLine); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := app.Logger(cfg)
	b, err := board.Open(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in := app.Inputs{Toggle: b.Toggle, Button: b.Button, Pot1: b.Pot1, Pot2: b.Pot2}
	m := app.NewMachine(cfg, b.Frame, in, core.NewSystemClock(), logger)
	err = m.Run(ctx)

	if cerr := b.Close(); cerr != nil {
		log.Printf("shutdown: %v", cerr)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
	fmt.Println("Program stopped.")
}
