package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "github.com/oknkahraman/appustabul/internal/configs"
	httpapi "github.com/oknkahraman/appustabul/internal/http"
	"github.com/oknkahraman/appustabul/internal/queue"
	repository "github.com/oknkahraman/appustabul/internal/repositories"
	"github.com/oknkahraman/appustabul/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the UstaBul HTTP API, completion scheduler and notification dispatcher",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		db := config.New(cfg.DatabaseDSN)

		redisClient := config.NewRedisClient(cfg.RedisAddr)
		defer redisClient.Close()

		jobRepo := repository.NewJobRepository(db)
		appRepo := repository.NewApplicationRepository(db)
		ratingRepo := repository.NewRatingRepository(db)
		notifRepo := repository.NewNotificationRepository(db)
		userRepo := repository.NewUserRepository(db)
		deadlineRepo := repository.NewDeadlineRepository(db)
		skillRepo := repository.NewSkillRepository(db)

		eventQueue := queue.NewRedisEventQueue(redisClient, cfg.RedisEventKey)

		scheduler := services.NewSchedulerService(deadlineRepo)
		lifecycle := services.NewLifecycleService(
			db, jobRepo, appRepo, scheduler, eventQueue,
			time.Duration(cfg.GuaranteeWindowHours)*time.Hour,
		)
		reputation := services.NewReputationService(ratingRepo, userRepo, jobRepo, appRepo)
		dispatcher := services.NewDispatcherService(
			eventQueue, notifRepo, reputation,
			time.Duration(cfg.DispatchIntervalSeconds)*time.Second,
		)
		auth := services.NewAuthService(userRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
		profiles := services.NewProfileService(userRepo, skillRepo)

		if err := scheduler.Start(context.Background(), lifecycle.AutoComplete); err != nil {
			log.Fatalf("failed to restore completion deadlines: %v", err)
		}
		dispatcher.Start()

		e := echo.New()
		handler := httpapi.NewHandler(auth, profiles, lifecycle, dispatcher, reputation)
		httpapi.Register(e, handler, auth, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		ctx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(ctx)
		dispatcher.Shutdown()
		scheduler.Shutdown()

		log.Println("HTTP server, dispatcher and scheduler shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
