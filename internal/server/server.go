// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"JobBoard-backend/internal/auth"
	"JobBoard-backend/internal/config"
	"JobBoard-backend/internal/controller/file"
	"JobBoard-backend/internal/database"
	"JobBoard-backend/internal/policy"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// MyServer holds everything the route handlers share
type MyServer struct {
	Config    *config.Config
	DB        *database.DBinstanceStruct
	Policy    *policy.Policy
	Blacklist auth.JwtBlacklistStore
	Redis     *redis.Client
	Storage   file.StorageClient
}

// NewMyServer connects the database and the optional redis and cloud storage backends described by cfg
func NewMyServer(cfg *config.Config) (*MyServer, error) {
	auth.Configure(cfg.SecretKey, cfg.JwtTTL)
	auth.EnableAuthLogging(cfg.AuthLogging)

	db, err := database.GetMainDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("database failed to initialize: %w", err)
	}

	s := &MyServer{
		Config: cfg,
		DB:     db,
		Policy: policy.NewPolicy(db),
	}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		s.Redis = redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Redis.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to reach redis: %w", err)
		}
		s.Blacklist = auth.NewRedisBlacklistStore(s.Redis)
		log.Info("using redis for token blacklist and rate limiting")
	} else {
		s.Blacklist = auth.NewInMemoryBlacklistStore()
	}

	if cfg.GCSBucket != "" {
		storage, err := file.NewCloudStorageClient(cfg.GCSBucket)
		if err != nil {
			return nil, err
		}
		s.Storage = storage
		log.WithField("bucket", cfg.GCSBucket).Info("storing uploads in cloud storage")
	}

	return s, nil
}

// NewServer construct new http.Server serving the API
func NewServer(cfg *config.Config) (*http.Server, *MyServer, error) {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	s, err := NewMyServer(cfg)
	if err != nil {
		return nil, nil, err
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return server, s, nil
}

// Close releases the backends opened by NewMyServer
func (s *MyServer) Close() {
	if mem, ok := s.Blacklist.(*auth.InMemoryBlacklistStore); ok {
		mem.Stop()
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			log.WithError(err).Warn("failed to close redis client")
		}
	}
	if gcs, ok := s.Storage.(*file.CloudStorageClient); ok {
		if err := gcs.Close(); err != nil {
			log.WithError(err).Warn("failed to close cloud storage client")
		}
	}
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			log.WithError(err).Warn("failed to close database")
		}
	}
}
