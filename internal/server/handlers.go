package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jcanete/agendum/internal/availability"
	"github.com/jcanete/agendum/internal/schedule"
)

func (s *Server) health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// slotResponse is one availability slot on the wire.
type slotResponse struct {
	Start     string `json:"start"`
	Available bool   `json:"available"`
}

// getAvailability returns the slot list for ?date=YYYY-MM-DD with an
// optional ?staff= filter and ?duration= service length in minutes
// (defaults to one grid step).
func (s *Server) getAvailability(c echo.Context) error {
	day, err := schedule.ParseDate(c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	duration := s.window.StepMinutes
	if v := c.QueryParam("duration"); v != "" {
		duration, err = strconv.Atoi(v)
		if err != nil || duration <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "duration must be a positive number of minutes")
		}
	}

	var staffID *string
	if v := c.QueryParam("staff"); v != "" {
		staffID = &v
	}

	booked, err := s.repo.BookedIntervals(c.Request().Context(), day, staffID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	intervals := make([]availability.Interval, len(booked))
	for i, b := range booked {
		intervals[i] = availability.Interval{StartMinutes: b.StartMinutes, EndMinutes: b.EndMinutes}
	}

	slots := availability.Slots(s.window, day, duration, intervals, time.Now())
	resp := make([]slotResponse, len(slots))
	for i, slot := range slots {
		resp[i] = slotResponse{Start: slot.Label, Available: slot.Available}
	}
	return c.JSON(http.StatusOK, resp)
}

// appointmentResponse is one appointment on the wire.
type appointmentResponse struct {
	ID           string  `json:"id"`
	ServiceName  string  `json:"service_name"`
	CustomerName string  `json:"customer_name,omitempty"`
	Date         string  `json:"date"`
	Start        string  `json:"start"`
	End          string  `json:"end"`
	StaffID      *string `json:"staff_id,omitempty"`
	Status       string  `json:"status"`
}

func toResponse(a *schedule.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:           a.ID,
		ServiceName:  a.ServiceName,
		CustomerName: a.CustomerName,
		Date:         a.Day.Format("2006-01-02"),
		Start:        a.Start,
		End:          a.End,
		StaffID:      a.StaffID,
		Status:       string(a.Status),
	}
}

// listAppointments returns appointments between ?from and ?to (inclusive,
// YYYY-MM-DD). Both default to today.
func (s *Server) listAppointments(c echo.Context) error {
	from, err := schedule.ParseDate(c.QueryParam("from"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	to, err := schedule.ParseDate(c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if to.Before(from) {
		return echo.NewHTTPError(http.StatusBadRequest, "to must be on or after from")
	}

	appts, err := s.repo.ListByDateRange(c.Request().Context(), from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]appointmentResponse, len(appts))
	for i, a := range appts {
		resp[i] = toResponse(a)
	}
	return c.JSON(http.StatusOK, resp)
}

type createRequest struct {
	ServiceName  string  `json:"service_name"`
	CustomerName string  `json:"customer_name"`
	Date         string  `json:"date"`
	Start        string  `json:"start"`
	End          string  `json:"end"`
	StaffID      *string `json:"staff_id"`
}

func (s *Server) createAppointment(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	a, err := schedule.New(req.ServiceName, req.CustomerName, req.Date, req.Start, req.End, req.StaffID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := s.repo.CreateAppointment(c.Request().Context(), a); err != nil {
		if errors.Is(err, schedule.ErrTimeBlockOverlap) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, toResponse(a))
}

type moveRequest struct {
	Date  string `json:"date"`
	Start string `json:"start"`
}

func (s *Server) moveAppointment(c echo.Context) error {
	id := c.Param("id")

	var req moveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	a, err := s.repo.GetAppointment(c.Request().Context(), id)
	if err != nil {
		return mapDomainError(err)
	}

	newDay, err := schedule.ParseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := schedule.ValidateTime(req.Start); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := schedule.TimeToMinutes(req.Start)
	newEnd := schedule.MinutesToTime(start + a.Duration())

	if err := s.repo.MoveAppointment(c.Request().Context(), id, newDay, req.Start, newEnd); err != nil {
		return mapDomainError(err)
	}

	moved, err := s.repo.GetAppointment(c.Request().Context(), id)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, toResponse(moved))
}

type resizeRequest struct {
	DurationMinutes int `json:"duration_minutes"`
}

func (s *Server) resizeAppointment(c echo.Context) error {
	id := c.Param("id")

	var req resizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.DurationMinutes < s.window.StepMinutes {
		return echo.NewHTTPError(http.StatusBadRequest, "duration below minimum")
	}

	a, err := s.repo.GetAppointment(c.Request().Context(), id)
	if err != nil {
		return mapDomainError(err)
	}

	newEnd := schedule.MinutesToTime(a.StartMinutes() + req.DurationMinutes)
	if err := s.repo.UpdateTimes(c.Request().Context(), id, a.Start, newEnd); err != nil {
		return mapDomainError(err)
	}

	resized, err := s.repo.GetAppointment(c.Request().Context(), id)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, toResponse(resized))
}

type statusRequest struct {
	Status string `json:"status"`
}

func (s *Server) setStatus(c echo.Context) error {
	id := c.Param("id")

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	status := schedule.Status(req.Status)
	if !status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, schedule.ErrInvalidStatus.Error())
	}

	if err := s.repo.SetStatus(c.Request().Context(), id, status); err != nil {
		return mapDomainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func mapDomainError(err error) error {
	switch {
	case errors.Is(err, schedule.ErrAppointmentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, schedule.ErrTimeBlockOverlap):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
