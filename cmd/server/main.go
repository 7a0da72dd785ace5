// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/marketjoys/AutomatedResponder/internal/config"
	"github.com/marketjoys/AutomatedResponder/internal/controller"
	"github.com/marketjoys/AutomatedResponder/internal/db"
	"github.com/marketjoys/AutomatedResponder/internal/logger"
	"github.com/marketjoys/AutomatedResponder/internal/provider"
	"github.com/marketjoys/AutomatedResponder/internal/queue"
	"github.com/marketjoys/AutomatedResponder/internal/repository"
	"github.com/marketjoys/AutomatedResponder/internal/service"
)

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

	zlog.Info("starting",
		zap.String("service", cfg.App.ServiceName),
		zap.String("version", cfg.App.Version),
	)

	// Init DB
	conn, err := db.Open(cfg.Database)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	defer conn.Close()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(conn, cfg.Database.MigrationsPath); err != nil {
			zlog.Fatal("database migration failed", zap.Error(err))
		}
	}

	campaignRepo := &repository.CampaignRepository{DB: conn}
	templateRepo := &repository.TemplateRepository{DB: conn}
	prospectRepo := &repository.ProspectRepository{DB: conn}
	listRepo := &repository.ProspectListRepository{DB: conn}
	messageRepo := &repository.EmailMessageRepository{DB: conn}

	registry, amqpSender := buildProviders(cfg, zlog)
	if amqpSender != nil {
		defer amqpSender.Close()
	}

	tasks := queue.NewTaskQueue(cfg.Dispatch.QueueSize, cfg.Dispatch.Workers, zlog)
	tasks.Start()

	dispatcher := &service.Dispatcher{
		CampaignRepo: campaignRepo,
		ProspectRepo: prospectRepo,
		MessageRepo:  messageRepo,
		Providers:    registry,
		Tasks:        tasks,
		Log:          zlog,
		SendDelay:    cfg.Dispatch.SendDelay,
	}

	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		TemplateRepo: templateRepo,
		ProspectRepo: prospectRepo,
		MessageRepo:  messageRepo,
		Dispatcher:   dispatcher,
		Log:          zlog,
	}

	campaignController := &controller.CampaignController{
		CampaignService: campaignService,
	}
	templateController := &controller.TemplateController{
		TemplateRepo: templateRepo,
	}
	listController := &controller.ProspectListController{
		ListRepo:     listRepo,
		ProspectRepo: prospectRepo,
	}

	r := chi.NewRouter()

	// Campaign routes
	r.Post("/campaigns", campaignController.CreateCampaign)
	r.Get("/campaigns", campaignController.ListCampaigns)
	r.Get("/campaigns/{id}", campaignController.GetCampaign)
	r.Post("/campaigns/{id}/send", campaignController.SendCampaign)
	r.Post("/campaigns/{id}/personalized-preview", campaignController.PersonalizedPreview)
	r.Get("/campaigns/{id}/messages", campaignController.ListMessages)

	// Template routes
	r.Post("/templates", templateController.CreateTemplate)
	r.Get("/templates", templateController.ListTemplates)

	// Prospect list routes
	r.Post("/lists", listController.CreateList)
	r.Get("/lists", listController.ListLists)
	r.Post("/lists/{id}/prospects", listController.AddProspect)
	r.Get("/lists/{id}/prospects", listController.ListProspects)

	addr := fmt.Sprintf("%s:%d", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("🚀 server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
	}

	// Campaign runs in flight finish writing their outcomes before exit.
	tasks.Stop()
}

func buildProviders(cfg *config.Config, zlog *zap.Logger) (*provider.Registry, *provider.AMQPSender) {
	senders := []provider.Sender{
		&provider.MockSender{FailRate: cfg.Provider.Mock.FailRate},
		provider.NewSMTPSender(provider.SMTPConfig{
			Host:     cfg.Provider.SMTP.Host,
			Port:     cfg.Provider.SMTP.Port,
			Username: cfg.Provider.SMTP.Username,
			Password: cfg.Provider.SMTP.Password,
			From:     cfg.Provider.SMTP.From,
			UseTLS:   cfg.Provider.SMTP.UseTLS,
		}),
	}

	var amqpSender *provider.AMQPSender
	if cfg.Provider.Default == "amqp" {
		s, err := provider.NewAMQPSender(cfg.Provider.AMQP.URL, cfg.Provider.AMQP.Queue)
		if err != nil {
			// Runs will see no default provider and abort until the broker is back.
			zlog.Warn("amqp provider unavailable", zap.Error(err))
		} else {
			amqpSender = s
			senders = append(senders, s)
		}
	}

	return provider.NewRegistry(cfg.Provider.Default, senders...), amqpSender
}
