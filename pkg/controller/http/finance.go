package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/model/auth"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
	"github.com/chunpat/life-pulse-ai/pkg/usecase"
	"github.com/chunpat/life-pulse-ai/pkg/utils/errutil"
)

func listFinanceHandler(uc *usecase.FinanceUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())

		records, err := uc.List(r.Context(), user)
		if err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"records": records})
	}
}

func createFinanceHandler(uc *usecase.FinanceUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())

		var record model.FinanceRecord
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
			return
		}

		created, err := uc.Create(r.Context(), user, &record)
		if err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusCreated, created)
	}
}

func deleteFinanceHandler(uc *usecase.FinanceUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())
		id := types.RecordID(chi.URLParam(r, "id"))

		if err := uc.Delete(r.Context(), user, id); err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"id": id.String()})
	}
}

// syncFinanceHandler replaces the finance records linked to a log entry
func syncFinanceHandler(uc *usecase.FinanceUseCase) http.HandlerFunc {
	type request struct {
		Items []model.ParsedFinance `json:"items"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())
		logID := types.LogID(chi.URLParam(r, "logID"))

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
			return
		}

		records, err := uc.SyncForLog(r.Context(), user, logID, req.Items)
		if err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"records": records})
	}
}

func financeStatsHandler(uc *usecase.FinanceUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())

		var from, to time.Time
		var err error
		if s := r.URL.Query().Get("from"); s != "" {
			if from, err = parseTimeParam(s); err != nil {
				errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
				return
			}
		}
		if s := r.URL.Query().Get("to"); s != "" {
			if to, err = parseTimeParam(s); err != nil {
				errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
				return
			}
		}

		stats, err := uc.Stats(r.Context(), user, from, to)
		if err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, stats)
	}
}

func parseTimeParam(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "invalid time parameter", goerr.V("value", s))
	}
	return t, nil
}
