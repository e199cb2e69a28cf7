package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/stayware/hotel-system/booking-service/application"
	"github.com/stayware/hotel-system/booking-service/domain"
)

// BookingHandlers contains booking HTTP handlers
type BookingHandlers struct {
	createBooking   *application.CreateBooking
	getBooking      *application.GetBooking
	depositBooking  *application.DepositBooking
	checkInBooking  *application.CheckInBooking
	checkOutBooking *application.CheckOutBooking
	cancelBooking   *application.CancelBooking
}

// NewBookingHandlers creates new booking handlers
func NewBookingHandlers(
	createBooking *application.CreateBooking,
	getBooking *application.GetBooking,
	depositBooking *application.DepositBooking,
	checkInBooking *application.CheckInBooking,
	checkOutBooking *application.CheckOutBooking,
	cancelBooking *application.CancelBooking,
) *BookingHandlers {
	return &BookingHandlers{
		createBooking:   createBooking,
		getBooking:      getBooking,
		depositBooking:  depositBooking,
		checkInBooking:  checkInBooking,
		checkOutBooking: checkOutBooking,
		cancelBooking:   cancelBooking,
	}
}

// CreateBooking handles booking creation requests
func (h *BookingHandlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var cmd application.CreateBookingCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.createBooking.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// GetBooking handles booking retrieval requests
func (h *BookingHandlers) GetBooking(w http.ResponseWriter, r *http.Request) {
	query := &application.GetBookingQuery{
		BookingID: chi.URLParam(r, "id"),
	}

	response, err := h.getBooking.Execute(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// DepositBooking handles deposit payment requests
func (h *BookingHandlers) DepositBooking(w http.ResponseWriter, r *http.Request) {
	cmd := &application.DepositBookingCommand{
		BookingID: chi.URLParam(r, "id"),
	}

	response, err := h.depositBooking.Execute(r.Context(), cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// CheckInBooking handles guest check-in requests
func (h *BookingHandlers) CheckInBooking(w http.ResponseWriter, r *http.Request) {
	var cmd application.CheckInBookingCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmd.BookingID = chi.URLParam(r, "id")

	response, err := h.checkInBooking.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// CheckOutBooking handles guest check-out requests
func (h *BookingHandlers) CheckOutBooking(w http.ResponseWriter, r *http.Request) {
	var cmd application.CheckOutBookingCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmd.BookingID = chi.URLParam(r, "id")

	response, err := h.checkOutBooking.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// CancelBooking handles booking cancellation requests
func (h *BookingHandlers) CancelBooking(w http.ResponseWriter, r *http.Request) {
	var cmd application.CancelBookingCommand
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&cmd) // reason is optional
	}
	cmd.BookingID = chi.URLParam(r, "id")

	response, err := h.cancelBooking.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, response)
}

// RegisterRoutes registers booking routes
func (h *BookingHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", h.CreateBooking)
		r.Get("/{id}", h.GetBooking)
		r.Post("/{id}/deposit", h.DepositBooking)
		r.Post("/{id}/check-in", h.CheckInBooking)
		r.Post("/{id}/check-out", h.CheckOutBooking)
		r.Post("/{id}/cancel", h.CancelBooking)
	})
}

// writeError maps domain errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBookingNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrCustomerNotFound):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, domain.ErrRoomUnavailable):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidStateTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrNoRooms):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
