package main

import (
	"DocVault/config"
	"DocVault/internal/repo"
	"DocVault/internal/worker"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	config.InitConfig()
	repo.InitMysql()

	events := repo.NewViewerEventRepository(repo.Db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("event worker started")
	if err := worker.RunEventWorker(ctx, events); err != nil {
		log.Fatalf("event worker stopped: %v", err)
	}
}
