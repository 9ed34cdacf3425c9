package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"time-planner/internal/config"
	"time-planner/internal/logger"
	"time-planner/internal/repository"
	"time-planner/internal/server"
	"time-planner/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := logger.Init(cfg.Development); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	taskRepo := repository.NewTaskRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	agendaSvc := service.NewAgendaService(taskRepo, habitRepo)
	taskSvc := service.NewTaskService(taskRepo, habitRepo)
	habitSvc := service.NewHabitService(habitRepo)
	blockSvc := service.NewBlockService(taskRepo)
	promotionSvc := service.NewPromotionService(reminderRepo, taskRepo)
	reminderSvc := service.NewReminderService(reminderRepo)
	pointsSvc := service.NewPointsService(taskRepo, habitRepo)
	categorySvc := service.NewCategoryService(categoryRepo)

	srv := server.New(agendaSvc, taskSvc, habitSvc, blockSvc, promotionSvc, reminderSvc, pointsSvc, categorySvc, cfg.Today)

	scheduler := service.NewSchedulerService(cfg.Location)
	if cfg.PromoteAt != "" {
		if _, err := scheduler.ScheduleDaily(cfg.PromoteAt, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			moved, err := promotionSvc.PromoteDueReminders(jobCtx, cfg.Today())
			if err != nil {
				logger.Error("promote reminders", err)
				return
			}
			logger.Info("promoted reminders", zap.Int("moved", moved))
		}); err != nil {
			log.Fatalf("schedule promotion: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Router(cfg.CORSOrigin),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", err)
		}
	}()

	logger.Info("planner server started", zap.String("addr", cfg.Addr))
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server stopped with error: %v", err)
	}
	logger.Info("shutdown complete")
}
