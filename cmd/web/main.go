package main

import (
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"hoopsight/internal/app"
	"hoopsight/pkg/contracts"
)

//go:embed all:frontend/*
var frontendAssets embed.FS

func main() {
	port := flag.Int("port", 0, "listen port (overrides HOOP_SERVER_PORT)")
	dataDir := flag.String("data", "", "dataset directory (overrides HOOP_DATA_DIR)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	// Flags win over the environment; the config layer reads both the
	// same way.
	if *port > 0 {
		os.Setenv("HOOP_SERVER_PORT", strconv.Itoa(*port))
	}
	if *dataDir != "" {
		os.Setenv("HOOP_DATA_DIR", *dataDir)
	}

	if err := run(); err != nil {
		slog.Error("hoopsight exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	frontend, err := fs.Sub(frontendAssets, "frontend")
	if err != nil {
		slog.Warn("frontend assets unavailable, serving API only", slog.String("error", err.Error()))
	}

	a, err := app.New(frontend)
	if err != nil {
		return err
	}
	return a.Run()
}
