package worker

import (
	"DocVault/config"
	"DocVault/internal/mq"
	"DocVault/internal/repo"
	"DocVault/internal/service"
	"context"
	"errors"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/time/rate"
)

// RunEventWorker consumes viewer events from RabbitMQ and maintains the
// per-link daily view counters.
func RunEventWorker(ctx context.Context, events *repo.ViewerEventRepository) error {
	client, err := mq.Dial()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.DeclareTopology(); err != nil {
		return err
	}

	prefetch := config.AppConfig.RabbitMQPrefetch
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := client.Channel.Qos(prefetch, 0, false); err != nil {
		return err
	}

	deliveries, err := client.Channel.Consume(
		mq.QueueEvents,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	concurrency := config.AppConfig.EventWorkerConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)

	burst := config.AppConfig.EventBurst
	if burst <= 0 {
		burst = 1
	}
	rateLimit := config.AppConfig.EventRate
	var limiter *rate.Limiter
	if rateLimit <= 0 {
		limiter = rate.NewLimiter(rate.Inf, burst)
	} else {
		limiter = rate.NewLimiter(rate.Limit(rateLimit), burst)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("event worker: delivery channel closed")
			}
			sem <- struct{}{}
			go func(d amqp.Delivery) {
				defer func() { <-sem }()
				handleEventMessage(ctx, events, limiter, d)
			}(delivery)
		}
	}
}

func handleEventMessage(ctx context.Context, events *repo.ViewerEventRepository, limiter *rate.Limiter, delivery amqp.Delivery) {
	msg, err := service.UnmarshalViewEvent(delivery.Body)
	if err != nil {
		log.Printf("event worker: invalid message: %v", err)
		_ = delivery.Ack(false)
		return
	}

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			_ = delivery.Nack(false, true)
			return
		}
	}

	if err := events.BumpDaily(ctx, msg.OwnerUserID, msg.LinkID, msg.ViewedAt); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			_ = delivery.Nack(false, true)
			return
		}
		log.Printf("event worker: bump daily failed: %v", err)
		_ = delivery.Nack(false, true)
		return
	}

	_ = delivery.Ack(false)
}
