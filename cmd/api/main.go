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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yourusername/spacesnap-api/internal/config"
	"github.com/yourusername/spacesnap-api/internal/handler"
	"github.com/yourusername/spacesnap-api/internal/middleware"
	"github.com/yourusername/spacesnap-api/internal/pkg/metrics"
	pgRepo "github.com/yourusername/spacesnap-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/spacesnap-api/internal/repository/redis"
	"github.com/yourusername/spacesnap-api/internal/service"
	"github.com/yourusername/spacesnap-api/internal/service/stylequiz"
	"github.com/yourusername/spacesnap-api/pkg/auth"
	"github.com/yourusername/spacesnap-api/pkg/database"
)

func main() {
	// Переменные из .env не перекрывают уже заданные в окружении
	if err := godotenv.Load(); err != nil {
		log.Printf("Файл .env не найден, используются переменные окружения: %v", err)
	}

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
	if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	appMetrics := metrics.NewMetrics("api")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	resultRepo := pgRepo.NewResultRepo(db)
	styleRepo := pgRepo.NewStyleRepo(db)
	imageRepo := pgRepo.NewImageRepo(db)
	verificationRepo := pgRepo.NewEmailVerificationRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// --- Движок подбора стиля ---
	catalog := stylequiz.DefaultCatalog()
	chain := stylequiz.NewChainSource(appMetrics,
		stylequiz.NewCuratedTier(quizRepo),
		stylequiz.NewImageCatalogTier(imageRepo, catalog),
		stylequiz.NewDefaultTier(catalog),
	)
	questionSource := stylequiz.NewCachedSource(chain, cacheRepo, cfg.Quiz.QuestionCacheTTL())
	engine := stylequiz.NewEngine(catalog, stylequiz.NewImageRoomCatalog(imageRepo), styleRepo)

	// --- JWT и письма ---
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	var emailService service.EmailService = &service.NoopEmailService{}
	if cfg.Email.ResendAPIKey != "" {
		resendService, errEmail := service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From, cfg.Email.CodeTTL())
		if errEmail != nil {
			log.Printf("Failed to initialize Resend email service: %v", errEmail)
			os.Exit(1)
		}
		emailService = resendService
	} else {
		log.Println("RESEND_API_KEY не задан: коды подтверждения будут писаться в лог")
	}

	verificationService, err := service.NewEmailVerificationService(userRepo, verificationRepo, emailService, service.EmailVerificationConfig{
		CodeTTL:        cfg.Email.CodeTTL(),
		ResendCooldown: cfg.Email.ResendCooldown(),
		MaxAttempts:    cfg.Email.MaxAttempts,
		CodePepper:     cfg.Email.CodePepper,
	})
	if err != nil {
		log.Printf("Failed to initialize EmailVerificationService: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	authService, err := service.NewAuthService(userRepo, jwtService, verificationService)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}
	quizService, err := service.NewQuizService(questionSource, engine, resultRepo, quizRepo, questionSource, appMetrics)
	if err != nil {
		log.Printf("Failed to initialize QuizService: %v", err)
		os.Exit(1)
	}
	styleService := service.NewStyleService(styleRepo, catalog)
	imageService := service.NewImageService(imageRepo, questionSource)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService, verificationService, cfg.JWT.ExpirationHrs*3600)
	quizHandler := handler.NewQuizHandler(quizService)
	imageHandler := handler.NewImageHandler(imageService)
	styleHandler := handler.NewStyleHandler(styleService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Периодически снимаем статистику пула соединений с базой
	go func() {
		sqlDB, errDB := database.GetSQLDB(db)
		if errDB != nil {
			log.Printf("[Metrics] Не удалось получить sql.DB: %v", errDB)
			return
		}
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				stats := sqlDB.Stats()
				appMetrics.RecordDBPoolStats(stats.OpenConnections, stats.InUse, stats.Idle, stats.WaitCount, stats.WaitDuration)
			case <-ctx.Done():
				return
			}
		}
	}()

	// Инициализируем роутер Gin
	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		// Production: не доверять прокси-заголовкам
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	router.Use(middleware.Metrics(appMetrics))

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})
	router.GET("/metrics", gin.WrapH(appMetrics.Handler()))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", rateLimiter.Limit(middleware.AuthRateLimitConfig()), authHandler.Register)
			authGroup.POST("/login", rateLimiter.Limit(middleware.AuthRateLimitConfig()), authHandler.Login)

			authedAuth := authGroup.Group("")
			authedAuth.Use(authMiddleware.RequireAuth())
			{
				authedAuth.GET("/me", authHandler.Me)
				authedAuth.POST("/verify-email/send", rateLimiter.LimitByUser(middleware.EmailRateLimitConfig()), authHandler.SendVerificationCode)
				authedAuth.POST("/verify-email/confirm", authHandler.ConfirmVerificationCode)
				authedAuth.GET("/verify-email/status", authHandler.VerificationStatus)
			}
		}

		// Квиз
		quiz := api.Group("/quiz")
		{
			quiz.GET("/questions", quizHandler.GetQuestions)
			quiz.POST("/submit", authMiddleware.OptionalAuth(), quizHandler.SubmitQuiz)
			quiz.GET("/results/:id", authMiddleware.OptionalAuth(), middleware.ExtractUintParam("id", "resultID"), quizHandler.GetResult)
			quiz.GET("/my-results", authMiddleware.RequireAuth(), quizHandler.GetMyResults)
		}

		// Изображения
		images := api.Group("/images")
		{
			images.GET("", imageHandler.List)
			images.GET("/:name", imageHandler.Get)

			adminImages := images.Group("")
			adminImages.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
			{
				adminImages.POST("", imageHandler.Upload)
				adminImages.DELETE("/:name", imageHandler.Delete)
			}
		}

		// Стили
		styles := api.Group("/styles")
		{
			styles.GET("", styleHandler.List)
			styles.GET("/:id", styleHandler.Get)
		}

		// Администрирование
		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			admin.PUT("/quiz", quizHandler.ReplaceQuiz)
			admin.GET("/quiz-results/export", quizHandler.ExportResults)
			admin.PUT("/styles/:id", styleHandler.Upsert)
		}
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
