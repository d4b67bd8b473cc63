package interfaces

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/smartspend/SmartSpend/internal/schedule/application"
	"github.com/smartspend/SmartSpend/internal/schedule/domain"
	scheduleErrors "github.com/smartspend/SmartSpend/internal/schedule/errors"
)

type ScheduleServiceInterface interface {
	ListTemplates(userID, today string) ([]application.TemplateOverview, error)
	ListUpcoming(userID, today string) ([]domain.Transaction, error)
	GenerateUpcoming(userID, today string, monthsAhead int) ([]domain.Transaction, error)
	CollectPastDue(userID, today string) ([]domain.Transaction, error)
	Materialize(userID string, virtual domain.Transaction) (*domain.Transaction, error)
	MigrateLegacy(userID string) (int, error)
	ExportRRule(userID, templateID string) (string, error)
}

type ScheduleHandler struct {
	service      ScheduleServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
	now          func() time.Time
}

func NewScheduleHandler(
	service ScheduleServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *ScheduleHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	if respondJSON == nil {
		log.Fatal("RespondJSON function must not be nil")
		return nil
	}
	if respondError == nil {
		log.Fatal("RespondError function must not be nil")
		return nil
	}
	return &ScheduleHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
		now:          time.Now,
	}
}

func (h *ScheduleHandler) today() string {
	return h.now().UTC().Format(domain.DateLayout)
}

func (h *ScheduleHandler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	overviews, err := h.service.ListTemplates(userID, h.today())
	if err != nil {
		log.Println("Error listing schedules:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve schedules")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Schedules retrieved successfully.",
		"data":    overviews,
	})
}

func (h *ScheduleHandler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	upcoming, err := h.service.ListUpcoming(userID, h.today())
	if err != nil {
		log.Println("Error listing upcoming transactions:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve upcoming transactions")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Upcoming transactions retrieved successfully.",
		"data":    upcoming,
	})
}

func (h *ScheduleHandler) GenerateUpcoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	months := 3
	if monthsStr := r.URL.Query().Get("months"); monthsStr != "" {
		parsed, err := strconv.Atoi(monthsStr)
		if err != nil || parsed <= 0 || parsed > 24 {
			h.respondError(w, http.StatusBadRequest, "Invalid months value")
			return
		}
		months = parsed
	}

	generated, err := h.service.GenerateUpcoming(userID, h.today(), months)
	if err != nil {
		log.Println("Error generating scheduled transactions:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to generate scheduled transactions")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Scheduled transactions generated successfully.",
		"data":    generated,
	})
}

func (h *ScheduleHandler) CollectPastDue(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	pastDue, err := h.service.CollectPastDue(userID, h.today())
	if err != nil {
		log.Println("Error collecting past-due transactions:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to collect past-due transactions")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Past-due transactions collected successfully.",
		"data":    pastDue,
	})
}

func (h *ScheduleHandler) Materialize(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var virtual domain.Transaction
	if err := json.NewDecoder(r.Body).Decode(&virtual); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	transaction, err := h.service.Materialize(userID, virtual)
	if err != nil {
		if scheduleErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Println("Error materializing transaction:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to materialize transaction")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully materialized.",
		"data":    transaction,
	})
}

func (h *ScheduleHandler) MigrateLegacy(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	migrated, err := h.service.MigrateLegacy(userID)
	if err != nil {
		log.Println("Error migrating legacy transactions:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to migrate legacy transactions")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Legacy recurring transactions migrated successfully.",
		"data":    map[string]int{"migrated": migrated},
	})
}

func (h *ScheduleHandler) ExportRRule(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	templateID := r.PathValue("id")
	if templateID == "" {
		h.respondError(w, http.StatusBadRequest, "Missing schedule ID")
		return
	}

	rule, err := h.service.ExportRRule(userID, templateID)
	if err != nil {
		if scheduleErrors.IsValidationError(err) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Println("Error exporting schedule rule:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to export schedule rule")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Schedule rule exported successfully.",
		"data":    map[string]string{"rrule": rule},
	})
}
