package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/kgob/backend/internal/advisor"
	"github.com/kgob/backend/internal/assessment"
	"github.com/kgob/backend/internal/auth"
	"github.com/kgob/backend/internal/database"
	"github.com/kgob/backend/internal/middleware"
	"github.com/kgob/backend/internal/progress"
	"github.com/kgob/backend/internal/wealthgap"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Built-in assessment definitions
	registry, err := assessment.DefaultRegistry()
	if err != nil {
		log.Fatalf("Invalid assessment definitions: %v", err)
	}

	// Services
	progressService := progress.NewService(progress.NewStore(db))
	assessmentService := assessment.NewService(registry, assessment.NewManager(), assessment.NewStore(db))
	assessmentService.SetProgressService(progressService)

	llmClient, model := advisor.NewClient()
	advisorService := advisor.NewService(llmClient, model)

	// Handlers
	authHandler := auth.NewHandler(db)
	assessmentHandler := assessment.NewHandler(assessmentService)
	wealthGapHandler := wealthgap.NewHandler(wealthgap.NewStore(db))
	progressHandler := progress.NewHandler(progressService)
	advisorHandler := advisor.NewHandler(advisorService, assessmentService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	// Assessments
	protected.HandleFunc("/assessments", assessmentHandler.ListAssessments).Methods("GET")
	protected.HandleFunc("/assessments/{key}", assessmentHandler.GetAssessment).Methods("GET")
	protected.HandleFunc("/assessments/{key}/sessions", assessmentHandler.StartSession).Methods("POST")
	protected.HandleFunc("/sessions/{id}", assessmentHandler.GetSession).Methods("GET")
	protected.HandleFunc("/sessions/{id}/answers", assessmentHandler.SubmitAnswer).Methods("POST")
	protected.HandleFunc("/sessions/{id}/next", assessmentHandler.Next).Methods("POST")
	protected.HandleFunc("/sessions/{id}/previous", assessmentHandler.Previous).Methods("POST")
	protected.HandleFunc("/sessions/{id}/retake", assessmentHandler.Retake).Methods("POST")
	protected.HandleFunc("/sessions/{id}/results", assessmentHandler.SessionResults).Methods("GET")
	protected.HandleFunc("/results", assessmentHandler.ListResults).Methods("GET")

	// Calculators
	protected.HandleFunc("/calculators/wealth-gap", wealthGapHandler.Compute).Methods("POST")
	protected.HandleFunc("/calculators/wealth-gap/history", wealthGapHandler.History).Methods("GET")

	// Advisor
	protected.HandleFunc("/advisor/recommendations", advisorHandler.Recommendations).Methods("POST")

	// Exit planning progress
	protected.HandleFunc("/progress", progressHandler.GetProgress).Methods("GET")
	protected.HandleFunc("/progress/phases/{phase}/complete", progressHandler.CompletePhase).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
