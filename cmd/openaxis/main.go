// Command openaxis runs the manufacturing playback service: a job store,
// the simulation clock, and the HTTP control API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/addcomposites/openaxis/internal/config"
	"github.com/addcomposites/openaxis/internal/db"
	"github.com/addcomposites/openaxis/internal/monitor"
	"github.com/addcomposites/openaxis/internal/playback"
	"github.com/addcomposites/openaxis/internal/timeutil"
	"github.com/addcomposites/openaxis/internal/version"
)

var (
	listen      = flag.String("listen", ":8080", "Listen address")
	dbPath      = flag.String("db", "openaxis.db", "Path to the job database")
	configPath  = flag.String("config", "", "Path to a simulation config JSON file")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("openaxis %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	cfg := config.EmptySimConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadSimConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	cell := playback.Cell{
		BuildPlateOrigin: cfg.GetBuildPlateOrigin(),
		RobotBase:        cfg.GetRobotBase(),
	}
	ctrl := playback.NewController(cell, cfg.GetVisualisationBudget(), cfg.GetMaxTickDeltaSeconds())
	ctrl.SetSpeed(cfg.GetDefaultSpeed())

	runner := playback.NewRunner(timeutil.RealClock{}, cfg.GetTickInterval(), ctrl)

	ws := monitor.NewWebServer(monitor.WebServerConfig{
		Address:            *listen,
		DB:                 database,
		Controller:         ctrl,
		HomeTransitSeconds: cfg.GetHomeTransitSeconds(),
	})

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runner.Run(ctx)
		log.Print("playback runner terminated")
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := ws.Start(ctx); err != nil {
			log.Printf("web server error: %v", err)
		}
	}()

	<-ctx.Done()
	wg.Wait()
	os.Exit(0)
}
