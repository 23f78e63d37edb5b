package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yourusername/ctf-arena/internal/config"
	"github.com/yourusername/ctf-arena/internal/handler"
	"github.com/yourusername/ctf-arena/internal/middleware"
	"github.com/yourusername/ctf-arena/internal/realtime"
	pgRepo "github.com/yourusername/ctf-arena/internal/repository/postgres"
	redisRepo "github.com/yourusername/ctf-arena/internal/repository/redis"
	"github.com/yourusername/ctf-arena/internal/service"
	"github.com/yourusername/ctf-arena/internal/service/sampling"
	"github.com/yourusername/ctf-arena/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	competitionRepo := pgRepo.NewCompetitionRepo(db)
	teamRepo := pgRepo.NewTeamRepo(db)
	challengeRepo := pgRepo.NewChallengeRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	submissionRepo := pgRepo.NewSubmissionRepo(db)
	standingRepo := pgRepo.NewStandingRepo(db)
	violationRepo := pgRepo.NewViolationRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Лента событий соревнования (WebSocket)
	feed := realtime.NewFeed()

	// Инициализируем сервисы
	sampler := sampling.NewSampler(rand.New(rand.NewSource(time.Now().UnixNano())))
	txManager := pgRepo.NewTxManager(db)
	assignmentService := service.NewAssignmentService(competitionRepo, teamRepo, questionRepo, quizRepo, sampler, txManager)
	gradingService := service.NewGradingService(quizRepo, standingRepo, cacheRepo, txManager)
	submissionService := service.NewSubmissionService(
		challengeRepo, teamRepo, submissionRepo, standingRepo, cacheRepo,
		feed, txManager, cfg.Competition.FlagCaseSensitive,
	)
	standingsService := service.NewStandingsService(
		standingRepo, submissionRepo, violationRepo, cacheRepo,
		time.Duration(cfg.Competition.StandingsCacheTTLSec)*time.Second,
	)

	// Инициализируем обработчики
	quizHandler := handler.NewQuizHandler(assignmentService, gradingService)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	standingsHandler := handler.NewStandingsHandler(standingsService)
	wsHandler := handler.NewWSHandler(feed)

	// Инициализируем роутер Gin
	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8000", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.MetricsMiddleware())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		competitions := api.Group("/competitions/:competition_id")
		competitions.Use(middleware.ExtractUintParam("competition_id", "competitionID"))
		{
			// Тестовая часть: выдача вопросов и просмотр своего набора
			quiz := competitions.Group("/quiz")
			{
				quiz.POST("/assignments", quizHandler.AssignQuestions)

				myAssignments := quiz.Group("/users/:user_id")
				myAssignments.Use(middleware.ExtractUintParam("user_id", "userID"))
				{
					myAssignments.GET("/assignments", quizHandler.GetMyAssignments)
				}
			}

			// CTF-задания и сдача флагов
			challenges := competitions.Group("/challenges")
			{
				challengesForUser := challenges.Group("/users/:user_id")
				challengesForUser.Use(middleware.ExtractUintParam("user_id", "userID"))
				{
					challengesForUser.GET("", submissionHandler.ListChallenges)
				}

				challengeWithID := challenges.Group("/:challenge_id")
				challengeWithID.Use(middleware.ExtractUintParam("challenge_id", "challengeID"))
				{
					challengeWithID.POST("/submissions", submissionHandler.SubmitFlag)
					challengeWithID.GET("/submissions", standingsHandler.ListChallengeAttempts)
				}
			}

			// Итоговые таблицы
			standings := competitions.Group("/standings")
			{
				standings.GET("", standingsHandler.GetLeaderboard)
				standings.GET("/export", standingsHandler.ExportLeaderboard)

				teamStanding := standings.Group("/teams/:team_id")
				teamStanding.Use(middleware.ExtractUintParam("team_id", "teamID"))
				{
					teamStanding.GET("", standingsHandler.GetTeamStanding)
				}

				participantStanding := standings.Group("/users/:user_id")
				participantStanding.Use(middleware.ExtractUintParam("user_id", "userID"))
				{
					participantStanding.GET("", standingsHandler.GetParticipantStanding)
				}
			}

			// Нарушения (read-only)
			competitions.GET("/violations", standingsHandler.ListViolations)

			// WebSocket-лента засчитанных решений
			competitions.GET("/feed", wsHandler.HandleConnection)
		}

		// Пересчет оценок тестовой части по регистрации
		registrations := api.Group("/registrations/:registration_id")
		registrations.Use(middleware.ExtractUintParam("registration_id", "registrationID"))
		{
			registrations.PUT("/answers", quizHandler.SubmitAnswers)
		}

		// Повтор начисления по записанной попытке (путь восстановления)
		api.POST("/submissions/:attempt_uid/propagate", submissionHandler.RetryPropagation)
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	if sqlDB, err := database.GetSQLDB(db); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database connection pool: %v", err)
		}
	}

	log.Println("Server exited properly")
}
