package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	appbilling "github.com/jhoicas/invoice-bot/internal/application/billing"
	"github.com/jhoicas/invoice-bot/internal/application/dialogue"
	"github.com/jhoicas/invoice-bot/internal/infrastructure/memory"
	"github.com/jhoicas/invoice-bot/internal/infrastructure/pdf"
	"github.com/jhoicas/invoice-bot/internal/infrastructure/telegram"
	httpRouter "github.com/jhoicas/invoice-bot/internal/interfaces/http"
	"github.com/jhoicas/invoice-bot/pkg/config"
	"github.com/jhoicas/invoice-bot/pkg/logger"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Arranca el servidor del webhook y atiende el diálogo",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	if cfg.Telegram.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN no definido en el entorno")
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Almacenes en memoria: sesiones de diálogo y anti-spam de /start
	store := memory.NewSessionStore()
	cooldown := memory.NewCooldown(cfg.Dialogue.StartCooldown, nil)

	// Transporte Telegram
	tg := telegram.NewClient(cfg.Telegram.BotToken, log)

	// Renderizado: Maroto → caso de uso con tope de tamaño y spool transitorio
	renderer := pdf.NewMarotoInvoiceRenderer()
	pdfUC := appbilling.NewPDFUseCase(renderer, cfg.Dialogue.TempDir, log)

	engine := dialogue.NewEngine(dialogue.Deps{
		Store:          store,
		Messenger:      tg,
		Documents:      pdfUC,
		Log:            log,
		SessionTimeout: cfg.Dialogue.SessionTimeout,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	webhook := httpRouter.NewWebhookHandler(engine, tg, tg, cooldown, log)
	httpRouter.Router(app, httpRouter.RouterDeps{
		Webhook: webhook,
		AppName: cfg.App.Name,
	})

	if cfg.Telegram.WebhookURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := tg.SetWebhook(ctx, cfg.Telegram.WebhookURL); err != nil {
			return fmt.Errorf("registrar webhook: %w", err)
		}
		log.Info().Str("url", cfg.Telegram.WebhookURL).Msg("webhook registrado")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}
