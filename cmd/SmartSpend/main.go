package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	database "github.com/smartspend/SmartSpend/internal/db"
	"github.com/smartspend/SmartSpend/internal/notification"
	"github.com/smartspend/SmartSpend/internal/schedule/application"
	"github.com/smartspend/SmartSpend/internal/schedule/domain"
	"github.com/smartspend/SmartSpend/internal/schedule/infrastructure"
	"github.com/smartspend/SmartSpend/internal/schedule/interfaces"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errors ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}
	if len(errors) > 0 && len(errors[0]) > 0 {
		payload["errors"] = errors[0]
	}
	respondJSON(w, status, payload)
}

func respondErrorSimple(w http.ResponseWriter, status int, message string) {
	respondError(w, status, message)
}

// requireUser resolves the authenticated user from the X-User-ID header set by
// the gateway in front of this service.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		ctx := context.WithValue(r.Context(), "userID", userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type Server struct {
	router          *http.ServeMux
	scheduleHandler *interfaces.ScheduleHandler
	categoryHandler *interfaces.CategoryHandler
	dbService       *database.DBService
}

func NewServer(scheduleHandler *interfaces.ScheduleHandler, categoryHandler *interfaces.CategoryHandler, dbService *database.DBService) *Server {
	return &Server{
		router:          http.NewServeMux(),
		scheduleHandler: scheduleHandler,
		categoryHandler: categoryHandler,
		dbService:       dbService,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	health := s.dbService.Health()
	status := http.StatusOK
	if health["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, health)
}

func (s *Server) RegisterRoutes() {
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	protectedRoutes := http.NewServeMux()
	protectedRoutes.Handle("GET /api/categories", requireUser(http.HandlerFunc(s.categoryHandler.GetCategories)))
	protectedRoutes.Handle("GET /api/schedules", requireUser(http.HandlerFunc(s.scheduleHandler.GetSchedules)))
	protectedRoutes.Handle("GET /api/schedules/upcoming", requireUser(http.HandlerFunc(s.scheduleHandler.GetUpcoming)))
	protectedRoutes.Handle("POST /api/schedules/generate", requireUser(http.HandlerFunc(s.scheduleHandler.GenerateUpcoming)))
	protectedRoutes.Handle("POST /api/schedules/materialize", requireUser(http.HandlerFunc(s.scheduleHandler.Materialize)))
	protectedRoutes.Handle("POST /api/schedules/collect-past-due", requireUser(http.HandlerFunc(s.scheduleHandler.CollectPastDue)))
	protectedRoutes.Handle("POST /api/schedules/migrate-legacy", requireUser(http.HandlerFunc(s.scheduleHandler.MigrateLegacy)))
	protectedRoutes.Handle("GET /api/schedules/{id}/rrule", requireUser(http.HandlerFunc(s.scheduleHandler.ExportRRule)))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/ready", publicRoutes)
	mainRouter.Handle("/api/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

// StartNotificationScheduler sends the due-tomorrow digest once a day.
func StartNotificationScheduler(notificationService *notification.Service) error {
	c := cron.New()
	_, err := c.AddFunc("@every 24h", func() {
		today := time.Now().UTC().Format(domain.DateLayout)
		sent, err := notificationService.SendUpcomingDigest(today)
		if err != nil {
			log.Printf("Error sending upcoming digest: %v", err)
		} else {
			log.Printf("Upcoming digest sent to %d users.", sent)
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server")
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	if err := dbService.EnsureSchema(); err != nil {
		log.Fatalf("Could not prepare database schema: %v", err)
	}

	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)
	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)

	scheduleService := application.NewScheduleService(transactionRepo, categoryRepo)
	categoryService := application.NewCategoryService(categoryRepo)

	scheduleHandler := interfaces.NewScheduleHandler(scheduleService, respondJSON, respondError)
	categoryHandler := interfaces.NewCategoryHandler(categoryService, respondJSON, respondErrorSimple)

	server := NewServer(scheduleHandler, categoryHandler, dbService)
	server.RegisterRoutes()

	notificationService := notification.NewService(transactionRepo, notification.LogSender{})
	if err := StartNotificationScheduler(notificationService); err != nil {
		log.Fatalf("Scheduler didn't start, stoping the app ...")
	}

	handler := loggingMiddleware(server.router)
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s...", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
