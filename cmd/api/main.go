package main

import (
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/config"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/database"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/logging"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/middleware"
	routes "github.com/AgusMolinaCode/Portfolio_Api.git/internal/server"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Cargar variables de entorno
	if err := godotenv.Load(); err != nil {
		log.Info().Err(err).Msg("no se pudo cargar el archivo .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	logging.Setup(cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery(), logging.RequestLogger())

	// Configurar CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "Admin-Key"}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length"}
	router.Use(cors.New(corsConfig))

	// Inicializar base de datos
	if err := database.InitDB(cfg.DatabaseDriver, cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("error al inicializar la base de datos")
	}
	defer database.DB.Close()

	if cfg.ClerkEnabled() {
		middleware.InitClerk(cfg.ClerkSecretKey)
	}

	market := services.NewMarketDataClient(
		services.WithBaseURL(cfg.MarketDataBaseURL),
		services.WithTimeout(cfg.MarketDataTimeout),
		services.WithRateLimit(cfg.MarketDataRate),
	)
	handlers := middleware.NewHandlers(database.DB, market, cfg.JWTSecret)

	// Verificación periódica de alertas, desactivada con intervalo 0
	alertChecker := services.NewAlertChecker(cfg.AlertCheckInterval, handlers.AlertRepository(), market)
	alertChecker.Start()
	defer alertChecker.Stop()

	routes.RegisterRoutes(router, handlers, cfg)

	log.Info().Str("port", cfg.Port).Str("driver", cfg.DatabaseDriver).Msg("servidor iniciado")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("error al iniciar el servidor")
	}
}
