package main

import (
	"context"
	"crypto/tls"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/Juniordecoy/xpa3-dd-dashboard/api"
	"github.com/Juniordecoy/xpa3-dd-dashboard/domain"
	"github.com/Juniordecoy/xpa3-dd-dashboard/storage"
)

func main() {
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}

	clock := domain.NewClock()
	seed := domain.SeedStates()
	for i := range seed {
		seed[i].UpdatedAt = clock.Stamp()
	}

	csvLogPath := os.Getenv("CSV_LOG_PATH")
	if csvLogPath == "" {
		csvLogPath = "door_state_log.csv"
	}
	auditLog := storage.NewAuditLog(csvLogPath)

	// The durable store is optional: Azure Tables when a storage connection
	// string is set, a local SQLite file as the self-hosted alternative,
	// neither when the board should run purely off seed data.
	var store storage.Strategy
	if connStr := os.Getenv("STORAGE_CONNECTION_STRING"); connStr != "" {
		tableName := os.Getenv("DOOR_STATE_TABLE")
		if tableName == "" {
			tableName = "doorstate"
		}
		ts, err := storage.NewTableStore(connStr, tableName, seed)
		if err != nil {
			log.Fatalf("table store: %v", err)
		}
		store = ts
	} else if path := os.Getenv("SQLITE_PATH"); path != "" {
		ss, err := storage.NewSQLiteStore(path, seed)
		if err != nil {
			log.Fatalf("sqlite store: %v", err)
		}
		store = ss
	}

	if redisConn := os.Getenv("REDIS_CONNECTION_STRING"); redisConn != "" && store != nil {
		redisOpts, err := redis.ParseURL(redisConn)
		if err != nil {
			parts := strings.Split(redisConn, ",")
			redisOpts = &redis.Options{Addr: parts[0]}
			for _, p := range parts[1:] {
				kv := strings.SplitN(p, "=", 2)
				if len(kv) != 2 {
					continue
				}
				switch strings.ToLower(kv[0]) {
				case "password":
					redisOpts.Password = kv[1]
				case "ssl":
					if strings.ToLower(kv[1]) == "true" {
						redisOpts.TLSConfig = &tls.Config{}
					}
				}
			}
		}
		rc := redis.NewClient(redisOpts)
		ttl := 30 * time.Second
		if v := os.Getenv("SNAPSHOT_CACHE_TTL"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				log.Fatalf("invalid SNAPSHOT_CACHE_TTL: %v", err)
			}
			ttl = d
		}
		store = storage.NewCache(store, rc, ttl)
	}

	logger := log.New()
	adapter := storage.NewAdapter(store, auditLog, clock, logger)

	board := domain.NewBoard()
	adapter.Bootstrap(context.Background(), board)

	e := echo.New()
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(echoprometheus.NewMiddleware("dashboard"))
	e.GET("/metrics", echoprometheus.NewHandler())
	e.Renderer = api.NewRenderer()

	api.Register(e, board, adapter, clock, logger)

	listenAddr := ":8080"
	if val, ok := os.LookupEnv("PORT"); ok {
		listenAddr = ":" + val
	}

	e.Logger.Fatal(e.Start(listenAddr))
}
