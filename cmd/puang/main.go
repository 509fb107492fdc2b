package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	corecmd "github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/cmd/core"
)

func main() {
	cfg, err := corecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[PUANG] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := corecmd.Run(ctx, cfg); err != nil {
		log.Fatalf("run: %v", err)
	}
}
