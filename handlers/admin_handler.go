package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/yashrajz/EventHorizon-sub001/models"
	"github.com/yashrajz/EventHorizon-sub001/services"
)

type AdminHandler struct {
	repo *services.Repository
}

func NewAdminHandler(repo *services.Repository) *AdminHandler {
	return &AdminHandler{repo: repo}
}

func (h *AdminHandler) requireAdmin(c echo.Context) error {
	if !models.IsAdmin(sessionFrom(c)) {
		return echo.NewHTTPError(http.StatusForbidden, "Admin role required")
	}
	return nil
}

// ListUsers - admin user table
func (h *AdminHandler) ListUsers(c echo.Context) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	users, err := h.repo.ListUsers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load users")
	}
	return c.JSON(http.StatusOK, users)
}

// SaveUser - insert or replace a user
func (h *AdminHandler) SaveUser(c echo.Context) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	var u models.User
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	saved, err := h.repo.SaveUser(c.Request().Context(), u)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save user")
	}
	return c.JSON(http.StatusOK, saved)
}

// DeleteUser - remove a user; unknown ids succeed silently
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	if err := h.repo.DeleteUser(c.Request().Context(), c.PathParam("id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete user")
	}
	return c.NoContent(http.StatusNoContent)
}

// SetUserBanned - toggle exactly the banned flag
func (h *AdminHandler) SetUserBanned(c echo.Context) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	var req struct {
		Banned bool `json:"banned"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	if err := h.repo.SetUserBanned(c.Request().Context(), c.PathParam("id"), req.Banned); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update user")
	}
	return c.NoContent(http.StatusNoContent)
}

// GetSettings - site-wide settings record
func (h *AdminHandler) GetSettings(c echo.Context) error {
	settings, err := h.repo.GetSettings(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load settings")
	}
	return c.JSON(http.StatusOK, settings)
}

// SaveSettings - replace the settings record
func (h *AdminHandler) SaveSettings(c echo.Context) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	var settings models.Settings
	if err := c.Bind(&settings); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	saved, err := h.repo.SaveSettings(c.Request().Context(), settings)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save settings")
	}
	return c.JSON(http.StatusOK, saved)
}

// ExportRegistrations - download one event's registrations as CSV
func (h *AdminHandler) ExportRegistrations(c echo.Context) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	eventID := c.PathParam("id")
	csv, err := h.repo.ExportRegistrationsCSV(c.Request().Context(), eventID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to export registrations")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=registrations-%s.csv", eventID))
	return c.Blob(http.StatusOK, "text/csv", []byte(csv))
}
