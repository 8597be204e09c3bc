package main

import (
	"log"

	"github.com/backsoul/gogoquiz/pkg/config"
	"github.com/backsoul/gogoquiz/pkg/handlers"
	"github.com/backsoul/gogoquiz/pkg/redis"
	"github.com/backsoul/gogoquiz/pkg/services"
	"github.com/backsoul/gogoquiz/pkg/storage"
	"github.com/backsoul/gogoquiz/pkg/websocket"
	"github.com/valyala/fasthttp"
)

func main() {
	log.Println("🚀 Iniciando servidor GoGoQuiz")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error cargando configuración: %v", err)
	}

	store, closeStore := openStore(cfg)
	defer closeStore()

	// Inicializar servicios
	log.Println("⚙️  Inicializando servicios...")
	quizService := services.NewQuizService(store)
	sessionService := services.NewSessionService(store, quizService, cfg.SessionTTL)

	seedQuizzes(quizService, cfg.SeedFile)

	// Inicializar WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	router := handlers.NewRouter(
		handlers.NewQuizHandler(quizService, hub, cfg.AppName),
		handlers.NewSessionHandler(sessionService),
		handlers.NewWebSocketHandler(quizService, hub),
	)

	server := &fasthttp.Server{
		Handler: router.Handle,
		Name:    "GoGoQuiz Server",
	}

	log.Printf("🎮 Servidor GoGoQuiz escuchando en %s", cfg.HTTPAddr)
	log.Println("🔧 API Health: /api/health")
	log.Println("📊 API Quizzes: /api/quizzes")
	log.Println("👤 API Sesiones: /api/sessions")
	log.Println("🔄 Presiona Ctrl+C para detener el servidor")

	if err := server.ListenAndServe(cfg.HTTPAddr); err != nil {
		log.Fatalf("Error al iniciar el servidor: %v", err)
	}
}

// openStore abre el almacenamiento elegido por STORAGE_DRIVER
func openStore(cfg config.Config) (storage.Store, func()) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		log.Printf("🗄️  Abriendo SQLite en %s...", cfg.SQLitePath)
		store, err := storage.NewSQLiteStore(cfg.SQLitePath, cfg.Namespace)
		if err != nil {
			log.Fatalf("Error abriendo SQLite: %v", err)
		}
		return store, func() { store.Close() }

	case config.DriverMemory:
		log.Println("🧠 Usando almacenamiento en memoria (los datos se pierden al reiniciar)")
		return storage.NewMemoryStore(cfg.Namespace), func() {}

	default:
		log.Printf("🔌 Conectando a Redis en %s...", cfg.RedisAddr)
		client, err := redis.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.Namespace)
		if err != nil {
			log.Fatalf("Error conectando a Redis: %v", err)
		}
		return client, func() { client.Close() }
	}
}

func seedQuizzes(quizService *services.QuizService, path string) {
	if path == "" {
		return
	}

	log.Printf("📚 Cargando quizzes iniciales desde %s...", path)
	loaded, err := quizService.SeedQuizzes(path)
	if err != nil {
		log.Printf("⚠️ Error cargando quizzes iniciales: %v", err)
		log.Println("💡 El servidor continuará funcionando. Puedes importar quizzes con POST /api/quizzes/import")
		return
	}
	log.Printf("✅ %d quizzes disponibles", loaded)
}
