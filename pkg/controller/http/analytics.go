package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/chunpat/life-pulse-ai/pkg/domain/model/auth"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
	"github.com/chunpat/life-pulse-ai/pkg/usecase"
	"github.com/chunpat/life-pulse-ai/pkg/utils/errutil"
)

// summaryHandler aggregates the user's logs within a period
func summaryHandler(uc *usecase.AnalyticsUseCase, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())

		period, date, err := periodParams(r, loc)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		result, err := uc.Summary(r.Context(), user, period, date)
		if err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// exportHandler renders a period's logs as CSV or JSON
func exportHandler(uc *usecase.ExportUseCase, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())

		period, date, err := periodParams(r, loc)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		format := r.URL.Query().Get("format")
		if format == "" {
			format = "csv"
		}

		switch format {
		case "csv":
			raw, err := uc.CSV(r.Context(), user, period, date)
			if err != nil {
				respondError(w, r, err)
				return
			}
			name := fmt.Sprintf("lifepulse-%s-%s.csv", period, date.In(loc).Format("2006-01-02"))
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(raw)

		case "json":
			raw, err := uc.JSON(r.Context(), user, period, date)
			if err != nil {
				respondError(w, r, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(raw)

		default:
			errutil.HandleHTTP(r.Context(), w, goerr.New("unsupported export format", goerr.V("format", format)), http.StatusBadRequest)
		}
	}
}

// periodParams reads the period and date query parameters, defaulting to the
// day containing the current time
func periodParams(r *http.Request, loc *time.Location) (types.PeriodType, time.Time, error) {
	period := types.PeriodDay
	if s := r.URL.Query().Get("period"); s != "" {
		parsed, err := types.ParsePeriodType(s)
		if err != nil {
			return "", time.Time{}, err
		}
		period = parsed
	}

	date := time.Now().In(loc)
	if s := r.URL.Query().Get("date"); s != "" {
		parsed, err := parseDateParam(s, loc)
		if err != nil {
			return "", time.Time{}, err
		}
		date = parsed
	}

	return period, date, nil
}

// parseDateParam accepts a bare date (interpreted in the app timezone) or a
// full RFC3339 timestamp
func parseDateParam(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "invalid date parameter", goerr.V("value", s))
	}
	return t, nil
}
