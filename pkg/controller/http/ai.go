package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/chunpat/life-pulse-ai/pkg/domain/model/auth"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
	"github.com/chunpat/life-pulse-ai/pkg/usecase"
	"github.com/chunpat/life-pulse-ai/pkg/utils/errutil"
)

// parseHandler runs the LLM parser without storing anything
func parseHandler(uc *usecase.LogUseCase) http.HandlerFunc {
	type request struct {
		Text     string `json:"text"`
		Language string `json:"language,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
			return
		}
		if req.Text == "" {
			errutil.HandleHTTP(r.Context(), w, goerr.New("text is required"), http.StatusBadRequest)
			return
		}

		parsed, err := uc.Parse(r.Context(), req.Text, req.Language)
		if err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, parsed)
	}
}

// dailyInsightHandler serves the default (day, today) insight slot. A failed
// generation still answers 200 with the fallback text so the client keeps
// rendering; the error is logged server-side.
func dailyInsightHandler(uc *usecase.InsightUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())

		insight, err := uc.DailyInsight(r.Context(), user)
		if err != nil {
			if errors.Is(err, usecase.ErrInsightGeneration) && insight != nil {
				_ = errutil.Handle(r.Context(), err, "insight generation failed, serving fallback")
				respondJSON(w, http.StatusOK, insight)
				return
			}
			respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, insight)
	}
}

// generateInsightHandler explicitly regenerates the insight for any
// (period, date) slot
func generateInsightHandler(uc *usecase.InsightUseCase, loc *time.Location) http.HandlerFunc {
	type request struct {
		Period string `json:"period"`
		Date   string `json:"date,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
			return
		}

		period, err := types.ParsePeriodType(req.Period)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		date := time.Now()
		if req.Date != "" {
			if date, err = parseDateParam(req.Date, loc); err != nil {
				errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
				return
			}
		}

		insight, err := uc.Generate(r.Context(), user, period, date)
		if err != nil {
			if errors.Is(err, usecase.ErrInsightGeneration) && insight != nil {
				_ = errutil.Handle(r.Context(), err, "insight generation failed, serving fallback")
				respondJSON(w, http.StatusOK, insight)
				return
			}
			respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, insight)
	}
}
