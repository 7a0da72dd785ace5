// cmd/relay/main.go
package main

import (
	"context"
	"encoding/json"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/marketjoys/AutomatedResponder/internal/config"
	"github.com/marketjoys/AutomatedResponder/internal/logger"
	"github.com/marketjoys/AutomatedResponder/internal/provider"
)

// The relay drains the outbound email queue filled by the amqp provider and
// delivers each envelope over SMTP. It lets the API process hand deliveries
// to a broker and keep its own send loop fast.
func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := config.MustLoad()

	zlog := logger.MustSetup(&logger.Config{
		Level:      cfg.Logger.Level,
		FormatJSON: cfg.Logger.FormatJSON,
		Rotation: logger.Rotation{
			File:       cfg.Logger.Rotation.File,
			MaxSize:    cfg.Logger.Rotation.MaxSize,
			MaxBackups: cfg.Logger.Rotation.MaxBackups,
			MaxAge:     cfg.Logger.Rotation.MaxAge,
		},
	})
	defer zlog.Sync()

	smtpSender := provider.NewSMTPSender(provider.SMTPConfig{
		Host:     cfg.Provider.SMTP.Host,
		Port:     cfg.Provider.SMTP.Port,
		Username: cfg.Provider.SMTP.Username,
		Password: cfg.Provider.SMTP.Password,
		From:     cfg.Provider.SMTP.From,
		UseTLS:   cfg.Provider.SMTP.UseTLS,
	})

	// Connect to RabbitMQ
	conn, err := amqp.Dial(cfg.Provider.AMQP.URL)
	if err != nil {
		zlog.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		zlog.Fatal("failed to open a channel", zap.Error(err))
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		cfg.Provider.AMQP.Queue, // name
		true,                    // durable
		false,                   // delete when unused
		false,                   // exclusive
		false,                   // no-wait
		nil,                     // arguments
	)
	if err != nil {
		zlog.Fatal("failed to declare queue", zap.Error(err))
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		zlog.Fatal("failed to register consumer", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		for d := range msgs {
			var env provider.Envelope
			if err := json.Unmarshal(d.Body, &env); err != nil {
				zlog.Warn("dropping malformed envelope", zap.Error(err))
				d.Ack(false)
				continue
			}

			if err := smtpSender.Send(ctx, env.To, env.Subject, env.Body); err != nil {
				zlog.Warn("delivery failed", zap.String("to", env.To), zap.Error(err))
				// Each envelope gets one redelivery; after that it is dropped.
				if !d.Redelivered {
					d.Nack(false, true)
					continue
				}
			} else {
				zlog.Info("delivered", zap.String("to", env.To), zap.String("subject", env.Subject))
			}

			d.Ack(false)
		}
	}()

	zlog.Info("relay running, waiting for envelopes", zap.String("queue", q.Name))
	<-ctx.Done()
	zlog.Info("shutting down")
}
