package commands

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"dictionary/internal/domain"
	"dictionary/internal/handler"
	"dictionary/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func botCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.ValidateBot(); err != nil {
				return err
			}
			logger := a.logger

			bot, err := tele.NewBot(tele.Settings{
				Token:  a.cfg.BotToken,
				Poller: &tele.LongPoller{Timeout: 10 * time.Second},
			})
			if err != nil {
				logger.Error("Failed to create bot", zap.Error(err))
				return err
			}

			logger.Info("Telegram bot initialized")

			authService := service.NewAuthService(a.slots, a.cfg.BotPassword)
			statsService := service.NewStatsService(a.store)

			h := handler.NewHandler(bot, authService, a.store, statsService, a.cfg.NotificationTTL, logger)
			h.RegisterHandlers()

			logger.Info("Handlers registered")

			unsubscribe := a.store.Subscribe(func(entries []domain.WordEntry) {
				logger.Debug("Dictionary changed", zap.Int("count", len(entries)))
			})
			defer unsubscribe()

			// Start bot in background
			go func() {
				logger.Info("Bot started successfully", zap.Int("words", a.store.Len()))
				bot.Start()
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case <-sigChan:
				logger.Info("Shutdown signal received, stopping bot...")
			case <-cmd.Context().Done():
				logger.Info("Context cancelled, stopping bot...")
			}

			bot.Stop()

			logger.Info("Bot stopped gracefully")
			return nil
		},
	}
}
