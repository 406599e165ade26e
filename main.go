package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/camden-git/presenceboard/audit"
	"github.com/camden-git/presenceboard/config"
	"github.com/camden-git/presenceboard/database"
	"github.com/camden-git/presenceboard/handlers"
	"github.com/camden-git/presenceboard/ingest"
	"github.com/camden-git/presenceboard/models"
	"github.com/camden-git/presenceboard/repository"
)

func main() {
	seed := flag.Bool("seed", false, "initialize the database with sample roster data and exit")
	flag.Parse()

	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	if dbDir := filepath.Dir(cfg.DatabasePath); dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create database directory %s: %v", dbDir, err)
		}
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}

	auditLogger, err := audit.NewLogger(cfg.LogDirectory)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize audit log directory: %v", err)
	}

	statusRepo := repository.NewStatusRepository(db)
	personRepo := repository.NewPersonRepository(db)
	ingestService := ingest.NewService(statusRepo, auditLogger)

	if *seed {
		if err := seedDatabase(personRepo, statusRepo); err != nil {
			log.Fatalf("FATAL: Seeding failed: %v", err)
		}
		log.Println("Database seeding completed.")
		return
	}

	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Writing audit logs to: %s", cfg.LogDirectory)
	log.Printf("Serving pages from: %s", cfg.TemplatesPath)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, //TODO: configurable
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	statusHandler := &handlers.StatusHandler{Ingest: ingestService, StatusRepo: statusRepo}
	adminHandler := &handlers.AdminHandler{PersonRepo: personRepo}

	r.Route("/api", func(r chi.Router) {
		r.Get("/status_update", statusHandler.UpdateStatus)
		r.Get("/status_view", statusHandler.StatusView)

		r.Route("/admin/people", func(r chi.Router) {
			r.Get("/", adminHandler.ListPeople)
			r.Post("/", adminHandler.AddPerson)
			r.Put("/bulk", adminHandler.BulkUpdate)
			r.Delete("/{person_id}", adminHandler.DeletePerson)
		})
	})

	r.Get("/admin/", handlers.ServePage(cfg.TemplatesPath, "admin.html"))
	r.Get("/view/", handlers.ServePage(cfg.TemplatesPath, "view.html"))
	r.Get("/static/*", handlers.StaticServer(cfg.TemplatesPath))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port
	fmt.Printf("Server starting on http://localhost:%s\n", port)
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}

// seedDatabase inserts a small starter roster and marks everyone absent,
// going through the normal status path so the first-report rule applies.
func seedDatabase(personRepo *repository.PersonRepository, statusRepo *repository.StatusRepository) error {
	existing, err := personRepo.ListAll()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Printf("Roster already has %d entries, skipping seed.", len(existing))
		return nil
	}

	people := []models.Person{
		{Name: "Taro Yamada", Department: "Computer Science", Grade: "3", Role: "Student", Room: "A101"},
		{Name: "Hanako Sato", Department: "Computer Science", Grade: "4", Role: "Student", Room: "A102"},
		{Name: "Ichiro Suzuki", Department: "Computer Science", Role: "Teacher", Room: "Staff Room"},
	}

	for i := range people {
		if err := personRepo.Create(&people[i]); err != nil {
			return err
		}
		log.Printf("Seeded person id=%d name=%s", people[i].ID, people[i].Name)

		if _, err := statusRepo.SetStatus(people[i].ID, 0, audit.Timestamp()); err != nil {
			return fmt.Errorf("failed to seed initial status for id=%d: %w", people[i].ID, err)
		}
	}
	return nil
}
