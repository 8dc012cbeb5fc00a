package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/PeteLJ/PetHeaven/internal/auth"
	authhandler "github.com/PeteLJ/PetHeaven/internal/auth/handler"
	cataloghandler "github.com/PeteLJ/PetHeaven/internal/catalog/handler"
	"github.com/PeteLJ/PetHeaven/internal/donation"
	donationhandler "github.com/PeteLJ/PetHeaven/internal/donation/handler"
	httpapi "github.com/PeteLJ/PetHeaven/internal/http"
	"github.com/PeteLJ/PetHeaven/internal/platform/config"
	"github.com/PeteLJ/PetHeaven/internal/platform/httpserver"
	"github.com/PeteLJ/PetHeaven/internal/platform/logger"
	"github.com/PeteLJ/PetHeaven/internal/platform/metrics"
	platformredis "github.com/PeteLJ/PetHeaven/internal/platform/redis"
	shelterhandler "github.com/PeteLJ/PetHeaven/internal/shelter/handler"
	"github.com/PeteLJ/PetHeaven/internal/shelter/service"
	requeststore "github.com/PeteLJ/PetHeaven/internal/shelter/store/request"
	userstore "github.com/PeteLJ/PetHeaven/internal/shelter/store/user"
)

// main wires the stores, services, and HTTP surface, then runs the server
// until a shutdown signal.
func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New()

	m := metrics.New()

	var (
		requests requeststore.Store
		users    userstore.Store
	)
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		requests = requeststore.NewRedis(redisClient.Client)
		users = userstore.NewRedis(redisClient.Client)
		log.Info("using redis stores", "url", cfg.RedisURL)
	} else {
		requests = requeststore.NewInMemory()
		users = userstore.NewInMemory()
		log.Info("using in-memory stores")
	}

	staff := auth.StaffCredentials{Username: cfg.StaffUsername, Password: cfg.StaffPassword}
	manager := auth.NewManager(users, staff, log, m)
	tokens := auth.NewTokenIssuer(cfg.JWTSigningKey, cfg.TokenTTL)

	lifecycle := service.New(requests, log, m, cfg.PaymentDelay)
	donations := donation.New(log, m)

	health := func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Auth:      authhandler.New(manager, tokens, log),
		Catalog:   cataloghandler.New(log),
		Donation:  donationhandler.New(donations, log),
		Shelter:   shelterhandler.New(lifecycle, log),
		Validator: tokens,
		Logger:    log,
		Metrics:   m,
		Health:    health,
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("server starting", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
