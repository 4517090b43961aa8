package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"songvault/config"
	"songvault/db"
	"songvault/logger"
	"songvault/service"
	"songvault/storage"
	"songvault/store"

	"github.com/gorilla/mux"
)

// Start initializes the dependencies and runs the HTTP server until a
// termination signal arrives.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", logger.ErrorField(err))
	}

	var songStore store.SongStore
	switch cfg.DBBackend {
	case config.BackendREST:
		songStore = store.NewRESTSongStore(cfg.RestURL, cfg.RestAPIKey)
		logger.Info("using hosted REST table backend")
	default:
		gdb, sqlDB, err := db.Connect(cfg)
		if err != nil {
			logger.Fatal("failed to connect to database", logger.ErrorField(err))
		}
		defer sqlDB.Close()

		if err := db.AutoMigrate(gdb); err != nil {
			logger.Fatal("failed to migrate database", logger.ErrorField(err))
		}
		songStore = store.NewMySQLSongStore(sqlDB)
		logger.Info("using MySQL backend",
			logger.String("host", cfg.DBHost), logger.String("database", cfg.DBName))
	}

	blobs, err := storage.New(cfg)
	if err != nil {
		logger.Fatal("failed to initialize object storage", logger.ErrorField(err))
	}

	// One service instance for the process lifetime.
	songService := service.NewSongService(songStore)
	apiHandler := NewAPIHandler(songService, blobs, cfg)

	router := NewRouter(apiHandler, cfg)

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", logger.String("addr", cfg.ServerAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-stop
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", logger.ErrorField(err))
	}
	logger.Info("server stopped")
}

// NewRouter wires the API routes, the object proxy and the web UI.
func NewRouter(apiHandler *APIHandler, cfg *config.Config) *mux.Router {
	router := mux.NewRouter()
	router.Use(corsMiddleware)

	router.HandleFunc("/", apiHandler.RootHandler).Methods(http.MethodGet)
	router.HandleFunc("/songs", apiHandler.AddSongHandler).Methods(http.MethodPost)
	router.HandleFunc("/songs", apiHandler.GetSongsHandler).Methods(http.MethodGet)
	router.HandleFunc("/songs/upload", apiHandler.UploadSongHandler).Methods(http.MethodPost)
	router.HandleFunc("/songs/{song_id}/rename", apiHandler.RenameSongHandler).Methods(http.MethodPut)
	router.HandleFunc("/songs/{song_id}/playcount", apiHandler.UpdatePlayCountHandler).Methods(http.MethodPut)
	router.HandleFunc("/songs/{song_id}", apiHandler.DeleteSongHandler).Methods(http.MethodDelete)

	router.PathPrefix("/files/").HandlerFunc(apiHandler.FileHandler).Methods(http.MethodGet)

	uiFileServer := http.FileServer(http.Dir(cfg.WebAppDir))
	router.PathPrefix("/ui/").Handler(http.StripPrefix("/ui/", uiFileServer))

	return router
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
