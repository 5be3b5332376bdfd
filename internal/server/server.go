package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Meghana-05-02/RFP-System/internal/config"
	"github.com/Meghana-05-02/RFP-System/internal/database"
	"github.com/Meghana-05-02/RFP-System/internal/extraction"
	"github.com/Meghana-05-02/RFP-System/internal/gemini"
	"github.com/Meghana-05-02/RFP-System/internal/handlers"
	"github.com/Meghana-05-02/RFP-System/internal/mail"
	"github.com/Meghana-05-02/RFP-System/internal/repositories"
	"github.com/Meghana-05-02/RFP-System/internal/routes"
	"github.com/Meghana-05-02/RFP-System/internal/services"
)

// New connects to the database, runs migrations, wires the dependency graph
// and returns the configured HTTP server plus a cleanup func that releases
// the connection pool.
func New(cfg *config.Config, logger *zap.Logger) (*http.Server, func(), error) {
	pool, err := database.Connect(cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	vendorRepo := repositories.NewVendorRepository(pool)
	rfpRepo := repositories.NewRFPRepository(pool)
	proposalRepo := repositories.NewProposalRepository(pool)

	generator := gemini.NewClient(cfg.Gemini)
	extractor := extraction.NewEngine(generator, cfg.Gemini.APIKey)
	mailer := mail.NewSender(cfg.SMTP)

	vendorService := services.NewVendorService(vendorRepo)
	rfpService := services.NewRFPService(rfpRepo, vendorRepo, proposalRepo, extractor, generator, mailer, logger)

	vendorHandler := handlers.NewVendorHandler(vendorService)
	rfpHandler := handlers.NewRFPHandler(rfpService)

	router := gin.Default()
	router.Use(cors.Default())
	routes.RegisterRoutes(router, vendorHandler, rfpHandler)

	return newHTTPServer(cfg.Server.Port, router), pool.Close, nil
}

// newHTTPServer configures the listener. The write timeout must outlast a
// full model call: create-from-text and ai-recommendation block on the
// Gemini client before writing the response.
func newHTTPServer(port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: gemini.RequestTimeout + 30*time.Second,
	}
}
