package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack/ledger-api/internal/api/shared"
	"github.com/fintrack/ledger-api/internal/domain"
	"github.com/fintrack/ledger-api/internal/platform/logger"
	"github.com/fintrack/ledger-api/internal/service"
	"github.com/fintrack/ledger-api/internal/store"
)

// EntryHandler handles ledger entry HTTP requests.
type EntryHandler struct {
	entryService service.EntryService
	userService  service.UserService
	logger       *slog.Logger
}

// NewEntryHandler creates an EntryHandler with the given dependencies.
func NewEntryHandler(
	entryService service.EntryService,
	userService service.UserService,
	log *slog.Logger,
) *EntryHandler {
	if log == nil {
		log = slog.Default()
	}
	return &EntryHandler{
		entryService: entryService,
		userService:  userService,
		logger:       log.With(slog.String("component", "entry_handler")),
	}
}

// Create handles POST /api/entries requests. New entries always come back
// with PENDING status regardless of what the request carried.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req EntryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	entry, err := h.entryFromRequest(&req)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	// The referenced owner must exist before the entry is accepted.
	if ok := h.requireOwner(w, r, entry.UserID); !ok {
		return
	}

	created, err := h.entryService.Save(r.Context(), entry)
	if err != nil {
		h.respondEntryError(w, r, err, "Failed to create entry")
		return
	}

	log.Debug("entry created",
		slog.Int64("entry_id", created.ID),
		slog.Int64("user_id", created.UserID))
	shared.RespondWithJSON(w, r, http.StatusCreated, NewEntryResponse(created))
}

// Search handles GET /api/entries requests. The user query parameter is
// mandatory and must name an existing user; the remaining parameters
// narrow the result set.
func (h *EntryHandler) Search(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	q := r.URL.Query()

	userID, err := strconv.ParseInt(q.Get("user"), 10, 64)
	if err != nil || userID <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Search requires a valid user id")
		return
	}

	if ok := h.requireOwner(w, r, userID); !ok {
		return
	}

	filter := store.EntryFilter{UserID: userID}

	if desc := q.Get("description"); desc != "" {
		filter.Description = &desc
	}
	if monthStr := q.Get("month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid month")
			return
		}
		filter.Month = &month
	}
	if yearStr := q.Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid year")
			return
		}
		filter.Year = &year
	}
	if typeStr := q.Get("type"); typeStr != "" {
		entryType, err := domain.ParseEntryType(typeStr)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
			return
		}
		filter.Type = &entryType
	}
	if statusStr := q.Get("status"); statusStr != "" {
		status, err := domain.ParseEntryStatus(statusStr)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
			return
		}
		filter.Status = &status
	}

	entries, err := h.entryService.Search(r.Context(), filter)
	if err != nil {
		h.respondEntryError(w, r, err, "Failed to search entries")
		return
	}

	responses := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, NewEntryResponse(entry))
	}

	log.Debug("entries searched",
		slog.Int64("user_id", userID),
		slog.Int("count", len(responses)))
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Update handles PUT /api/entries/{id} requests. The entry keeps whatever
// status the request supplies.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	entryID, ok := h.entryIDFromPath(w, r)
	if !ok {
		return
	}

	var req EntryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	existing, err := h.entryService.GetByID(r.Context(), entryID)
	if err != nil {
		h.respondEntryError(w, r, err, "Failed to update entry")
		return
	}

	entry, err := h.entryFromRequest(&req)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}
	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt
	if entry.Status == "" {
		entry.Status = existing.Status
	}

	updated, err := h.entryService.Update(r.Context(), entry)
	if err != nil {
		h.respondEntryError(w, r, err, "Failed to update entry")
		return
	}

	log.Debug("entry updated", slog.Int64("entry_id", updated.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, NewEntryResponse(updated))
}

// UpdateStatus handles PATCH /api/entries/{id}/status requests.
func (h *EntryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	entryID, ok := h.entryIDFromPath(w, r)
	if !ok {
		return
	}

	var req StatusUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	status, err := domain.ParseEntryStatus(req.Status)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	existing, err := h.entryService.GetByID(r.Context(), entryID)
	if err != nil {
		h.respondEntryError(w, r, err, "Failed to update entry status")
		return
	}

	updated, err := h.entryService.UpdateStatus(r.Context(), existing, status)
	if err != nil {
		h.respondEntryError(w, r, err, "Failed to update entry status")
		return
	}

	log.Debug("entry status updated",
		slog.Int64("entry_id", updated.ID),
		slog.String("status", string(updated.Status)))
	shared.RespondWithJSON(w, r, http.StatusOK, NewEntryResponse(updated))
}

// Delete handles DELETE /api/entries/{id} requests.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	entryID, ok := h.entryIDFromPath(w, r)
	if !ok {
		return
	}

	existing, err := h.entryService.GetByID(r.Context(), entryID)
	if err != nil {
		h.respondEntryError(w, r, err, "Failed to delete entry")
		return
	}

	if err := h.entryService.Delete(r.Context(), existing); err != nil {
		h.respondEntryError(w, r, err, "Failed to delete entry")
		return
	}

	log.Debug("entry deleted", slog.Int64("entry_id", entryID))
	w.WriteHeader(http.StatusNoContent)
}

// entryFromRequest builds a domain entry from the request payload. Type and
// status strings are parsed eagerly so malformed values fail before the
// service sees the entry; an absent status stays empty for the service to
// decide.
func (h *EntryHandler) entryFromRequest(req *EntryRequest) (*domain.Entry, error) {
	entry := &domain.Entry{
		Description: req.Description,
		Month:       req.Month,
		Year:        req.Year,
		Amount:      req.Amount.Decimal,
		UserID:      req.UserID,
	}
	if req.Type != "" {
		entryType, err := domain.ParseEntryType(req.Type)
		if err != nil {
			return nil, err
		}
		entry.Type = entryType
	}
	if req.Status != "" {
		status, err := domain.ParseEntryStatus(req.Status)
		if err != nil {
			return nil, err
		}
		entry.Status = status
	}
	return entry, nil
}

// requireOwner checks that the referenced user exists, responding with a
// business rule violation when it does not. Reports whether the request
// may proceed.
func (h *EntryHandler) requireOwner(w http.ResponseWriter, r *http.Request, userID int64) bool {
	_, err := h.userService.GetByID(r.Context(), userID)
	if err == nil {
		return true
	}
	if errors.Is(err, store.ErrUserNotFound) {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"User not found for the given id")
		return false
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
		"Failed to look up user", err)
	return false
}

func (h *EntryHandler) entryIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	entryID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || entryID <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid entry ID")
		return 0, false
	}
	return entryID, true
}

// respondEntryError maps service and store errors to HTTP responses with a
// fallback message for unexpected failures.
func (h *EntryHandler) respondEntryError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
	fallback string,
) {
	statusCode := MapErrorToStatusCode(err)
	safeMessage := GetSafeErrorMessage(err)
	if statusCode == http.StatusInternalServerError {
		safeMessage = fallback
	}
	shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
}
