package stats

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/saulo-duarte/coach-lambda/internal/config"
	"github.com/saulo-duarte/coach-lambda/internal/goal"
	"github.com/saulo-duarte/coach-lambda/internal/task"
	util "github.com/saulo-duarte/coach-lambda/internal/utils"
)

type Handler struct {
	service StatsService
	now     func() time.Time
}

func NewHandler(service StatsService) *Handler {
	return &Handler{service: service, now: time.Now}
}

func (h *Handler) today() util.LocalDate {
	n := h.now()
	return util.NewLocalDate(n.Year(), n.Month(), n.Day())
}

// dateParam reads ?date=, defaulting to today.
func (h *Handler) dateParam(r *http.Request) (util.LocalDate, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return h.today(), nil
	}
	return util.ParseLocalDate(raw)
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, stats *PeriodStats, err error) {
	if err != nil {
		switch {
		case errors.Is(err, task.ErrUnauthorized), errors.Is(err, goal.ErrUnauthorized):
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		case errors.Is(err, ErrInvalidMonth):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			config.WithContext(r.Context()).WithError(err).Error("Failed to compute stats")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}
	config.JSON(w, http.StatusOK, stats)
}

// Daily godoc
// @Summary  Completion statistics for one day
// @Tags     stats
// @Produce  json
// @Param    date  query     string  false  "YYYY-MM-DD, defaults to today"
// @Success  200   {object}  PeriodStats
// @Router   /stats/daily [get]
func (h *Handler) Daily(w http.ResponseWriter, r *http.Request) {
	date, err := h.dateParam(r)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}
	stats, err := h.service.Daily(r.Context(), date)
	h.write(w, r, stats, err)
}

// Weekly godoc
// @Summary  Completion statistics for the Monday-to-Sunday week containing date
// @Tags     stats
// @Produce  json
// @Param    date  query     string  false  "YYYY-MM-DD, defaults to today"
// @Success  200   {object}  PeriodStats
// @Router   /stats/weekly [get]
func (h *Handler) Weekly(w http.ResponseWriter, r *http.Request) {
	date, err := h.dateParam(r)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}
	stats, err := h.service.Weekly(r.Context(), date)
	h.write(w, r, stats, err)
}

// Monthly godoc
// @Summary  Completion statistics for a calendar month
// @Tags     stats
// @Produce  json
// @Param    year   query     int  false  "Defaults to the current year"
// @Param    month  query     int  false  "1-12, defaults to the current month"
// @Success  200    {object}  PeriodStats
// @Router   /stats/monthly [get]
func (h *Handler) Monthly(w http.ResponseWriter, r *http.Request) {
	today := h.today()
	year, month := today.Year(), int(today.Month())

	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}
		year = parsed
	}
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid month", http.StatusBadRequest)
			return
		}
		month = parsed
	}

	stats, err := h.service.Monthly(r.Context(), year, time.Month(month))
	h.write(w, r, stats, err)
}
