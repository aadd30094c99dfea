package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/hirable/webgate/internal/api"
	"github.com/hirable/webgate/internal/apiclient"
	"github.com/hirable/webgate/internal/audit"
	"github.com/hirable/webgate/internal/authz"
	"github.com/hirable/webgate/internal/config"
	"github.com/hirable/webgate/internal/handler"
	"github.com/hirable/webgate/internal/infrastructure/kafka"
	"github.com/hirable/webgate/internal/infrastructure/redis"
	"github.com/hirable/webgate/internal/observability"
	service "github.com/hirable/webgate/internal/services"
	"github.com/hirable/webgate/internal/session"
	"github.com/hirable/webgate/internal/storage/token"
)

func main() {
	cfg := config.Load()

	shutdown, metricsHandler := observability.Setup("hirable-webgate")
	defer shutdown(context.Background())

	redisClient, err := redis.NewClient(cfg.RedisAddr)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	var auditor audit.Publisher = audit.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		producer := kafka.NewProducer(cfg.KafkaBrokers)
		defer producer.Close()
		auditor = audit.NewKafkaPublisher(producer)
	}

	decoder := token.NewDecoder()
	table := authz.Default()

	// Domain calls forward the credential of the request that triggered
	// them; the guard middleware stashes it in the context.
	client := apiclient.New(cfg.BackendURL, token.NewContextStore())
	authSvc := service.NewAuthService(client)
	vacancySvc := service.NewVacancyService(client)
	candidateSvc := service.NewCandidateService(client)
	applicationSvc := service.NewJobApplicationService(client)
	tagSvc := service.NewTagService(client)

	sessions := func(r *http.Request) *handler.GatewaySession {
		sid := uuid.NewString()
		if cookie, err := r.Cookie(handler.SessionCookie); err == nil && cookie.Value != "" {
			sid = cookie.Value
		}
		store := token.NewRedisStore(redisClient, sid, cfg.SessionTTL)
		return &handler.GatewaySession{
			Manager: session.NewManager(store, decoder, authSvc, auditor),
			Store:   store,
			ID:      sid,
		}
	}

	h := handler.NewHandler(sessions, vacancySvc, candidateSvc, applicationSvc, tagSvc)
	router := api.SetupRouter(h, table, decoder, auditor, metricsHandler)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}
	go func() {
		log.Printf("Starting gateway on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
