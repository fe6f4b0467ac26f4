// migrate aplica o revierte las migraciones embebidas en el binario.
//
// Uso:
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
//	go run ./cmd/migrate steps -1
//	go run ./cmd/migrate version
//	go run ./cmd/migrate force 1
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/gestion-ventas/internal/infrastructure/postgres"
	"github.com/jhoicas/gestion-ventas/pkg/config"
	"github.com/jhoicas/gestion-ventas/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: migrate up|down|steps N|version|force N")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "migrate"})

	m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("migrador")
	}
	defer m.Close()

	if err := run(m, os.Args[1:]); err != nil {
		log.Error().Err(err).Str("cmd", os.Args[1]).Msg("migración fallida")
		os.Exit(1)
	}
}

func run(m *postgres.Migrator, args []string) error {
	switch args[0] {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "steps", "force":
		if len(args) < 2 {
			return fmt.Errorf("%s requiere un número", args[0])
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%s: %q no es un número", args[0], args[1])
		}
		if args[0] == "steps" {
			return m.Steps(n)
		}
		return m.Force(n)
	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Printf("versión %d (dirty=%t)\n", v, dirty)
		return nil
	default:
		return fmt.Errorf("comando desconocido %q", args[0])
	}
}
