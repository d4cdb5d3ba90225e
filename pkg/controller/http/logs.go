package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/model/auth"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
	"github.com/chunpat/life-pulse-ai/pkg/usecase"
	"github.com/chunpat/life-pulse-ai/pkg/utils/async"
	"github.com/chunpat/life-pulse-ai/pkg/utils/errutil"
)

func listLogsHandler(uc *usecase.LogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())

		entries, err := uc.List(r.Context(), user)
		if err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"logs": entries})
	}
}

// createLogHandler accepts either a raw note (AI-parsed into structured
// fields) or a pre-structured entry. A successful create warms the daily
// insight slot in the background so the next fetch is served from cache.
func createLogHandler(uc *usecase.LogUseCase, insight *usecase.InsightUseCase) http.HandlerFunc {
	type request struct {
		model.LogEntry
		Language string `json:"language,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
			return
		}

		var entry *model.LogEntry
		var err error
		if req.Activity == "" && req.RawText != "" {
			entry, err = uc.CreateFromText(r.Context(), user, req.RawText, req.Language)
		} else {
			entry, err = uc.Create(r.Context(), user, &req.LogEntry)
		}
		if err != nil {
			respondError(w, r, err)
			return
		}

		if insight.Enabled() && !user.IsGuest() {
			async.Dispatch(r.Context(), func(ctx context.Context) error {
				_, err := insight.DailyInsight(ctx, user)
				return err
			})
		}

		respondJSON(w, http.StatusCreated, entry)
	}
}

func updateLogHandler(uc *usecase.LogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())

		var entry model.LogEntry
		if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
			return
		}
		entry.ID = types.LogID(chi.URLParam(r, "id"))

		updated, err := uc.Update(r.Context(), user, &entry)
		if err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, updated)
	}
}

func deleteLogHandler(uc *usecase.LogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())
		id := types.LogID(chi.URLParam(r, "id"))

		if err := uc.Delete(r.Context(), user, id); err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"id": id.String()})
	}
}

// syncLogsHandler imports guest-side entries into the authenticated account
func syncLogsHandler(uc *usecase.LogUseCase) http.HandlerFunc {
	type request struct {
		Logs []*model.LogEntry `json:"logs"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
			return
		}

		imported, err := uc.BulkSync(r.Context(), user, req.Logs)
		if err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]int{"imported": imported})
	}
}
