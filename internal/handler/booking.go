package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/courtbook/court-reservation/internal/booking"
	"github.com/courtbook/court-reservation/internal/model"
	"github.com/courtbook/court-reservation/internal/queue"
	queue_publisher "github.com/courtbook/court-reservation/internal/service"
)

// BookingHandler is the thin transport layer over the booking engine.
// It parses request shapes, hands validated parameters to the engine,
// maps the engine's error taxonomy onto HTTP statuses and publishes
// booking events.  All business rules live in the engine; nothing
// here touches the store directly.
type BookingHandler struct {
	Engine  *booking.Engine
	Catalog booking.CourtCatalog // for enriching events with the court name
}

// NewBookingHandler constructs a BookingHandler.  The engine must be
// non-nil; the catalog may be nil, in which case events carry no
// court name.
func NewBookingHandler(engine *booking.Engine, catalog booking.CourtCatalog) *BookingHandler {
	if engine == nil {
		panic("nil engine passed to NewBookingHandler")
	}
	return &BookingHandler{Engine: engine, Catalog: catalog}
}

// getActor extracts the caller's identity from the context values set
// by the JWT middleware.  JWT claims decode numbers as float64, so a
// few representations are accepted for the user ID.
func getActor(c echo.Context) (booking.Actor, error) {
	var a booking.Actor
	switch t := c.Get("user_id").(type) {
	case uint64:
		a.UserID = t
	case int:
		a.UserID = uint64(t)
	case int64:
		a.UserID = uint64(t)
	case float64:
		a.UserID = uint64(t)
	case string:
		n, err := strconv.ParseUint(t, 10, 64)
		if err != nil {
			return a, errors.New("invalid user_id in context")
		}
		a.UserID = n
	default:
		return a, errors.New("invalid user_id in context")
	}
	if role, ok := c.Get("role").(string); ok {
		a.Role = role
	}
	if a.UserID == 0 {
		return a, errors.New("invalid user_id in context")
	}
	return a, nil
}

// engineError maps the engine's sentinels to HTTP responses.  Every
// business-rule rejection keeps its own message so clients can tell
// "pick another time" (slot unavailable) apart from "try again"
// (stale state) and from plain bad input.
func engineError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrInvalidInterval),
		errors.Is(err, booking.ErrInvalidPricingInput):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrNotAuthorized):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized"})
	case errors.Is(err, booking.ErrCourtNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
	case errors.Is(err, booking.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, booking.ErrCourtUnavailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "court unavailable"})
	case errors.Is(err, booking.ErrSlotUnavailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "time slot already booked"})
	case errors.Is(err, booking.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrStaleState):
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking changed concurrently, re-fetch and retry"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// bookingJSON shapes a booking for responses, rendering the slot as
// HH:MM clock strings.
func bookingJSON(b *model.Booking) echo.Map {
	return echo.Map{
		"id":             b.ID,
		"court_id":       b.CourtID,
		"user_id":        b.UserID,
		"date":           b.Date,
		"start_time":     booking.FormatClock(b.StartMin),
		"end_time":       booking.FormatClock(b.EndMin),
		"duration":       b.DurationHours,
		"total_price":    b.TotalPrice,
		"service_fee":    b.ServiceFee,
		"payment_method": b.PaymentMethod,
		"status":         b.Status,
		"notes":          b.Notes,
		"created_at":     b.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":     b.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Create handles POST /v1/bookings.  The body carries the court, the
// calendar date, the requested slot as HH:MM clock strings, the
// duration in hours and a payment method.  On success it returns 201
// with the new pending booking; a slot conflict returns 409.
func (h *BookingHandler) Create(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		CourtID       uint64  `json:"court_id"`
		Date          string  `json:"date"`
		StartTime     string  `json:"start_time"`
		EndTime       string  `json:"end_time"`
		Duration      float64 `json:"duration"`
		PaymentMethod string  `json:"payment_method"`
		Notes         string  `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.CourtID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "court_id is required"})
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	if !model.ValidPaymentMethod(body.PaymentMethod) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment method"})
	}
	start, err := booking.ParseClock(body.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be HH:MM"})
	}
	end, err := booking.ParseClock(body.EndTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be HH:MM"})
	}

	b, err := h.Engine.Admit(c.Request().Context(), booking.AdmitRequest{
		CourtID:       body.CourtID,
		UserID:        actor.UserID,
		Date:          body.Date,
		StartMin:      start,
		EndMin:        end,
		DurationHours: body.Duration,
		PaymentMethod: body.PaymentMethod,
		Notes:         body.Notes,
	})
	if err != nil {
		return engineError(c, err)
	}

	h.publishCreated(b)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "booking created successfully",
		"booking": bookingJSON(b),
	})
}

// UpdateStatus handles PATCH /v1/bookings/:id/status.  The requested
// status is run through the lifecycle state machine; illegal edges
// and lost races come back as 409, authorization failures as 403.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil || body.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status is required"})
	}
	return h.transition(c, actor, c.Param("id"), body.Status)
}

// Cancel handles DELETE /v1/bookings/:id.  Cancellation is a
// lifecycle transition, not a delete: the record is kept and the slot
// is implicitly released for new admissions.
func (h *BookingHandler) Cancel(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return h.transition(c, actor, c.Param("id"), model.StatusCancelled)
}

func (h *BookingHandler) transition(c echo.Context, actor booking.Actor, id, next string) error {
	prev, err := h.Engine.GetByID(c.Request().Context(), id, actor)
	if err != nil {
		return engineError(c, err)
	}
	b, err := h.Engine.Transition(c.Request().Context(), id, actor, next)
	if err != nil {
		return engineError(c, err)
	}
	if b.Status != prev.Status {
		h.publishStatusChanged(prev.Status, b)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "booking status updated",
		"booking": bookingJSON(b),
	})
}

// GetByID handles GET /v1/bookings/:id for the booking's owner or an
// admin.
func (h *BookingHandler) GetByID(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	b, err := h.Engine.GetByID(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": bookingJSON(b)})
}

// ListMine handles GET /v1/bookings/my with an optional ?status=
// filter.
func (h *BookingHandler) ListMine(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	status := c.QueryParam("status")
	if status != "" && !model.ValidStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
	}
	items, err := h.Engine.ListByUser(c.Request().Context(), actor, status)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": listJSON(items)})
}

// ListAll handles GET /v1/bookings/all, admin only, with an optional
// ?status= filter.
func (h *BookingHandler) ListAll(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	status := c.QueryParam("status")
	if status != "" && !model.ValidStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
	}
	items, err := h.Engine.ListAll(c.Request().Context(), actor, status)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": listJSON(items)})
}

func listJSON(items []model.Booking) []echo.Map {
	out := make([]echo.Map, 0, len(items))
	for i := range items {
		out = append(out, bookingJSON(&items[i]))
	}
	return out
}

// publishCreated emits a booking.created event.  Publishing is
// fire-and-forget: the booking is already durable and the publisher
// logs its own failures.
func (h *BookingHandler) publishCreated(b *model.Booking) {
	ev := queue.BookingEvent{
		Type:          queue.EventBookingCreated,
		BookingID:     b.ID,
		UserID:        b.UserID,
		CourtID:       b.CourtID,
		Date:          b.Date,
		StartTime:     booking.FormatClock(b.StartMin),
		EndTime:       booking.FormatClock(b.EndMin),
		TotalPrice:    b.TotalPrice,
		ServiceFee:    b.ServiceFee,
		PaymentMethod: b.PaymentMethod,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if h.Catalog != nil {
			if court, err := h.Catalog.GetCourt(ctx, b.CourtID); err == nil {
				ev.CourtName = court.Name
			}
		}
		_ = queue_publisher.PublishBookingEvent(ctx, ev)
	}()
}

// publishStatusChanged emits a booking.status_changed event.
func (h *BookingHandler) publishStatusChanged(from string, b *model.Booking) {
	ev := queue.BookingEvent{
		Type:       queue.EventBookingStatusChanged,
		BookingID:  b.ID,
		UserID:     b.UserID,
		CourtID:    b.CourtID,
		Date:       b.Date,
		FromStatus: from,
		ToStatus:   b.Status,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingEvent(ctx, ev)
	}()
}
