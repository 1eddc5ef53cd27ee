package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/internal/config"
	"github.com/jakechorley/shift-rota/pkg/core/scheduler"
	"github.com/jakechorley/shift-rota/pkg/core/services"
	"github.com/jakechorley/shift-rota/pkg/db"
	"github.com/jakechorley/shift-rota/pkg/roster"
)

// configOverride replaces individual config values for one request
type configOverride struct {
	MinPerShift        *int   `json:"minPerShift"`
	MaxPerShift        *int   `json:"maxPerShift"`
	MaxDaysPerEmployee *int   `json:"maxDaysPerEmployee"`
	RandomSeed         *int64 `json:"randomSeed"`
}

type scheduleRequest struct {
	roster.Document
	Config    *configOverride `json:"config,omitempty"`
	WeekStart string          `json:"weekStart,omitempty"`
	DryRun    bool            `json:"dryRun"`
}

type dayResponse struct {
	Day    string              `json:"day"`
	Date   string              `json:"date"`
	Shifts map[string][]string `json:"shifts"`
}

type scheduleResponse struct {
	RunID      string         `json:"runId,omitempty"`
	Persisted  bool           `json:"persisted"`
	WeekStart  string         `json:"weekStart"`
	Config     configResponse `json:"config"`
	Days       []dayResponse  `json:"days"`
	Warnings   []string       `json:"warnings"`
	DaysWorked map[string]int `json:"daysWorked"`
}

type configResponse struct {
	MinPerShift        int   `json:"minPerShift"`
	MaxPerShift        int   `json:"maxPerShift"`
	MaxDaysPerEmployee int   `json:"maxDaysPerEmployee"`
	RandomSeed         int64 `json:"randomSeed"`
}

type runResponse struct {
	ID        string         `json:"id"`
	WeekStart string         `json:"weekStart"`
	CreatedAt string         `json:"createdAt"`
	Config    configResponse `json:"config"`
}

type errorResponse struct {
	Error string `json:"error"`

	// Set for infeasible requests
	Required           int `json:"required,omitempty"`
	Supply             int `json:"supply,omitempty"`
	Deficit            int `json:"deficit,omitempty"`
	SuggestedEmployees int `json:"suggestedEmployees,omitempty"`
}

func (s *Server) createSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if err := roster.Validate(&req.Document); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	cfg, err := s.requestConfig(req)
	if err != nil {
		s.metrics.ObserveRun(OutcomeInvalid, 0, 0)
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	start := time.Now()
	result, err := services.GenerateSchedule(c.Request.Context(), s.store, cfg, s.logger, &req.Document, services.GenerateOptions{
		DryRun: req.DryRun,
	})
	elapsed := time.Since(start)
	if err != nil {
		s.writeScheduleError(c, err, elapsed)
		return
	}
	s.metrics.ObserveRun(OutcomeScheduled, len(result.Schedule.Warnings), elapsed)

	status := http.StatusCreated
	if !result.Persisted {
		status = http.StatusOK
	}
	c.JSON(status, scheduleResponse{
		RunID:      result.RunID,
		Persisted:  result.Persisted,
		WeekStart:  result.WeekStart.Format(config.WeekStartLayout),
		Config:     toConfigResponse(result.Config),
		Days:       toDayResponses(result.Schedule.Schedule, result.Dates),
		Warnings:   result.Schedule.Warnings,
		DaysWorked: result.Schedule.DaysWorked,
	})
}

// requestConfig layers the request overrides on a copy of the server config
func (s *Server) requestConfig(req scheduleRequest) (*config.Config, error) {
	cfg := *s.cfg
	if o := req.Config; o != nil {
		if o.MinPerShift != nil {
			cfg.MinPerShift = *o.MinPerShift
		}
		if o.MaxPerShift != nil {
			cfg.MaxPerShift = *o.MaxPerShift
		}
		if o.MaxDaysPerEmployee != nil {
			cfg.MaxDaysPerEmployee = *o.MaxDaysPerEmployee
		}
		if o.RandomSeed != nil {
			cfg.RandomSeed = *o.RandomSeed
		}
	}
	if req.WeekStart != "" {
		cfg.WeekStart = req.WeekStart
	}

	if err := config.Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *Server) writeScheduleError(c *gin.Context, err error, elapsed time.Duration) {
	var infeasible *scheduler.InfeasibleError
	switch {
	case errors.As(err, &infeasible):
		s.metrics.ObserveRun(OutcomeInfeasible, 0, elapsed)
		c.JSON(http.StatusUnprocessableEntity, errorResponse{
			Error:              infeasible.Error(),
			Required:           infeasible.Required,
			Supply:             infeasible.Supply,
			Deficit:            infeasible.Deficit,
			SuggestedEmployees: infeasible.SuggestedEmployees,
		})
	case errors.Is(err, scheduler.ErrInvalidInput):
		s.metrics.ObserveRun(OutcomeInvalid, 0, elapsed)
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		s.metrics.ObserveRun(OutcomeError, 0, elapsed)
		s.logger.Error("Failed to generate schedule", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to generate schedule"})
	}
}

func (s *Server) listRuns(c *gin.Context) {
	runs, err := services.ListRuns(c.Request.Context(), s.store, s.logger)
	if err != nil {
		s.logger.Error("Failed to list runs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list runs"})
		return
	}

	out := make([]runResponse, len(runs))
	for i, r := range runs {
		out[i] = toRunResponse(r)
	}
	c.JSON(http.StatusOK, out)
}

// getRun serves one stored run; the id "latest" selects the newest
func (s *Server) getRun(c *gin.Context) {
	runID := c.Param("id")
	if runID == "latest" {
		runID = ""
	}

	view, err := services.ViewSchedule(c.Request.Context(), s.store, s.logger, runID)
	if err != nil {
		if errors.Is(err, db.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		s.logger.Error("Failed to view run", zap.String("run_id", runID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to load run"})
		return
	}

	c.JSON(http.StatusOK, scheduleResponse{
		RunID:     view.Run.ID,
		Persisted: true,
		WeekStart: view.Run.WeekStart,
		Config: configResponse{
			MinPerShift:        view.Run.MinPerShift,
			MaxPerShift:        view.Run.MaxPerShift,
			MaxDaysPerEmployee: view.Run.MaxDaysPerEmployee,
			RandomSeed:         view.Run.RandomSeed,
		},
		Days:       toDayResponses(view.Schedule, view.Dates),
		Warnings:   view.Warnings,
		DaysWorked: view.DaysWorked,
	})
}

func toConfigResponse(cfg scheduler.Config) configResponse {
	return configResponse{
		MinPerShift:        cfg.MinPerShift,
		MaxPerShift:        cfg.MaxPerShift,
		MaxDaysPerEmployee: cfg.MaxDaysPerEmployee,
		RandomSeed:         cfg.RandomSeed,
	}
}

func toRunResponse(r db.Run) runResponse {
	return runResponse{
		ID:        r.ID,
		WeekStart: r.WeekStart,
		CreatedAt: r.CreatedAt,
		Config: configResponse{
			MinPerShift:        r.MinPerShift,
			MaxPerShift:        r.MaxPerShift,
			MaxDaysPerEmployee: r.MaxDaysPerEmployee,
			RandomSeed:         r.RandomSeed,
		},
	}
}

// toDayResponses lists the week in day order with names sorted per shift
func toDayResponses(sched scheduler.Schedule, dates map[scheduler.Day]time.Time) []dayResponse {
	sorted := sched.Sorted()
	days := make([]dayResponse, len(scheduler.Days))
	for i, day := range scheduler.Days {
		shifts := make(map[string][]string, len(scheduler.Shifts))
		for _, shift := range scheduler.Shifts {
			shifts[string(shift)] = sorted[day][shift]
		}
		days[i] = dayResponse{
			Day:    string(day),
			Date:   dates[day].Format(config.WeekStartLayout),
			Shifts: shifts,
		}
	}
	return days
}
