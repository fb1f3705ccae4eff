package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/yashrajz/EventHorizon-sub001/internal/status"
	"github.com/yashrajz/EventHorizon-sub001/models"
	"github.com/yashrajz/EventHorizon-sub001/services"
)

type EventHandler struct {
	repo *services.Repository
	now  func() time.Time
}

func NewEventHandler(repo *services.Repository) *EventHandler {
	return &EventHandler{
		repo: repo,
		now:  time.Now,
	}
}

// ListEvents - all events, newest first
func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.repo.ListEvents(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load events")
	}
	return c.JSON(http.StatusOK, events)
}

// ListActiveEvents - events not yet auto-removed
func (h *EventHandler) ListActiveEvents(c echo.Context) error {
	events, err := h.repo.ListEvents(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load events")
	}
	return c.JSON(http.StatusOK, services.FilterActive(events, h.now()))
}

// GetEventStatus - lifecycle classification of one event
func (h *EventHandler) GetEventStatus(c echo.Context) error {
	id := c.PathParam("id")

	events, err := h.repo.ListEvents(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load events")
	}

	for _, ev := range events {
		if ev.ID == id {
			return c.JSON(http.StatusOK, services.Classify(ev, h.now()))
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, status.ErrEventNotFound.Error())
}

// CreateEvent - insert or replace an event (admin back-office)
func (h *EventHandler) CreateEvent(c echo.Context) error {
	if !models.IsAdmin(sessionFrom(c)) {
		return echo.NewHTTPError(http.StatusForbidden, "Admin role required")
	}

	var ev models.Event
	if err := c.Bind(&ev); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	saved, err := h.repo.SaveEvent(c.Request().Context(), ev)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save event")
	}
	return c.JSON(http.StatusOK, saved)
}

// DeleteEvent - remove an event; unknown ids succeed silently
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	if !models.IsAdmin(sessionFrom(c)) {
		return echo.NewHTTPError(http.StatusForbidden, "Admin role required")
	}

	if err := h.repo.DeleteEvent(c.Request().Context(), c.PathParam("id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete event")
	}
	return c.NoContent(http.StatusNoContent)
}

// BumpViews - increment an event's view counter
func (h *EventHandler) BumpViews(c echo.Context) error {
	if err := h.repo.IncrementEventViews(c.Request().Context(), c.PathParam("id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update views")
	}
	return c.NoContent(http.StatusNoContent)
}

// ListRegistrations - all registrations, optionally filtered by ?event=
func (h *EventHandler) ListRegistrations(c echo.Context) error {
	ctx := c.Request().Context()

	if eventID := c.QueryParam("event"); eventID != "" {
		regs, err := h.repo.RegistrationsByEvent(ctx, eventID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load registrations")
		}
		return c.JSON(http.StatusOK, regs)
	}

	regs, err := h.repo.ListRegistrations(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load registrations")
	}
	return c.JSON(http.StatusOK, regs)
}

// CreateRegistration - register for an event, honoring the site-wide switch
func (h *EventHandler) CreateRegistration(c echo.Context) error {
	ctx := c.Request().Context()

	settings, err := h.repo.GetSettings(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load settings")
	}
	if !settings.RegistrationsEnabled {
		return echo.NewHTTPError(http.StatusForbidden, status.ErrRegistrationsClosed.Error())
	}

	var reg models.Registration
	if err := c.Bind(&reg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	saved, err := h.repo.SaveRegistration(ctx, reg)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save registration")
	}
	return c.JSON(http.StatusOK, saved)
}

// DeleteRegistration - cancel a registration
func (h *EventHandler) DeleteRegistration(c echo.Context) error {
	if err := h.repo.DeleteRegistration(c.Request().Context(), c.PathParam("id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete registration")
	}
	return c.NoContent(http.StatusNoContent)
}
