package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/signhey/signhey-server/config"
	"github.com/signhey/signhey-server/internal/database"
	"github.com/signhey/signhey-server/internal/pkg/email"
	"github.com/signhey/signhey-server/internal/pkg/queue"
	"github.com/signhey/signhey-server/internal/repository"
	"github.com/signhey/signhey-server/internal/worker"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	mailQueue := queue.NewQueue(rdb, cfg.Queue.AgreementQueue)
	agreementRepo := repository.NewAgreementRepository(db)
	sender := email.NewService(&cfg.Email)
	mailer := worker.NewMailer(sender, agreementRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	log.Printf("Mailer worker started, max workers: %d", cfg.Queue.MaxWorkers)

	for i := 0; i < cfg.Queue.MaxWorkers; i++ {
		go func(workerID int) {
			for {
				select {
				case <-ctx.Done():
					log.Printf("Worker %d shutting down", workerID)
					return
				default:
					msg, err := mailQueue.Pop(ctx, 5*time.Second)
					if err != nil {
						if ctx.Err() != nil {
							return
						}
						log.Printf("Worker %d: failed to pop message: %v", workerID, err)
						continue
					}

					if msg == nil {
						continue // timeout, keep waiting
					}

					log.Printf("Worker %d: delivering agreement %d", workerID, msg.AgreementID)
					if err := mailer.Process(ctx, msg); err != nil {
						log.Printf("Worker %d: agreement %d failed: %v", workerID, msg.AgreementID, err)
					}
				}
			}
		}(i)
	}

	<-ctx.Done()
	log.Println("Worker shutdown complete")
}
