package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"reelproxy/api"
	"reelproxy/config"
	"reelproxy/handlers"
	"reelproxy/services/tmdb"
	"reelproxy/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] %v", err)
	}

	if cfg.LogFile != "" {
		log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
		}))
	}

	if !cfg.HasCredentials() {
		log.Printf("[main] WARNING: no TMDB credentials configured; API requests will fail until TMDB_TOKEN or TMDB_API_KEY is set")
	}

	svc := tmdb.NewService(cfg.TMDBToken, cfg.TMDBAPIKey, nil)
	movies := handlers.NewMovieHandler(svc)

	r := utils.NewRouter()

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(api.RequestLogger)
	apiRouter.Use(api.RateLimit(api.NewIPRateLimiter(rate.Limit(10), 30)))
	apiRouter.HandleFunc("/genres", movies.Genres).Methods(http.MethodGet)
	apiRouter.HandleFunc("/providers", movies.Providers).Methods(http.MethodGet)
	apiRouter.HandleFunc("/search", movies.Search).Methods(http.MethodGet)
	apiRouter.HandleFunc("/videos/{id}", movies.Videos).Methods(http.MethodGet)

	r.PathPrefix("/").Handler(handlers.NewStaticHandler()).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("[main] listening on %s", cfg.Addr())
	log.Fatal(srv.ListenAndServe())
}
