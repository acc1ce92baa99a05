package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/teamup-dev/teamup-backend/config"
	"github.com/teamup-dev/teamup-backend/internal/bootstrap"
	cronjob "github.com/teamup-dev/teamup-backend/internal/matching/cron"
	"github.com/teamup-dev/teamup-backend/internal/matching/repository"
	"github.com/teamup-dev/teamup-backend/internal/matching/service"
	"github.com/teamup-dev/teamup-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	sqlDB, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("database (sql): %v", err)
	}
	defer sqlDB.Close()

	projects := service.NewProjectService(repository.NewProjectRepo(pool), nil)
	stats := postgres.NewStatsStore(sqlDB)

	c := cronjob.NewScheduler(projects, stats).Start()
	defer c.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("worker shutting down")
}
