package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/chunpat/life-pulse-ai/pkg/domain/interfaces"
	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
	"github.com/chunpat/life-pulse-ai/pkg/service/analytics"
)

// ExportUseCase renders a period's logs as CSV or JSON. Localized category
// labels appear only here, never in stored data or aggregation keys.
type ExportUseCase struct {
	repo     interfaces.Repository
	location *time.Location
	labels   map[types.Category]string
}

func newExportUseCase(repo interfaces.Repository, loc *time.Location, labels map[types.Category]string) *ExportUseCase {
	return &ExportUseCase{repo: repo, location: loc, labels: labels}
}

func (uc *ExportUseCase) label(c types.Category) string {
	if label, ok := uc.labels[c]; ok {
		return label
	}
	return c.String()
}

// CSV exports the logs within the period containing date
func (uc *ExportUseCase) CSV(ctx context.Context, user *model.User, period types.PeriodType, date time.Time) ([]byte, error) {
	logs, _, err := logsInPeriod(ctx, uc.repo, user.ID, period, date, uc.location)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "time", "activity", "category", "category_label", "duration_minutes", "mood", "importance", "raw_text"}
	if err := w.Write(header); err != nil {
		return nil, goerr.Wrap(err, "failed to write csv header")
	}

	for _, entry := range logs {
		at := entry.Time().In(uc.location)
		row := []string{
			at.Format("2006-01-02"),
			at.Format("15:04"),
			entry.Activity,
			entry.Category.String(),
			uc.label(entry.Category),
			strconv.Itoa(entry.DurationMinutes),
			entry.Mood,
			strconv.Itoa(entry.Importance),
			entry.RawText,
		}
		if err := w.Write(row); err != nil {
			return nil, goerr.Wrap(err, "failed to write csv row", goerr.V("logID", entry.ID))
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, goerr.Wrap(err, "failed to flush csv")
	}

	return buf.Bytes(), nil
}

type exportDocument struct {
	Period  types.PeriodType   `json:"period"`
	Start   time.Time          `json:"start"`
	End     time.Time          `json:"end"`
	Summary *analytics.Summary `json:"summary"`
	Logs    []*model.LogEntry  `json:"logs"`
}

// JSON exports the logs and their aggregation within the period
func (uc *ExportUseCase) JSON(ctx context.Context, user *model.User, period types.PeriodType, date time.Time) ([]byte, error) {
	logs, rng, err := logsInPeriod(ctx, uc.repo, user.ID, period, date, uc.location)
	if err != nil {
		return nil, err
	}

	doc := exportDocument{
		Period:  period,
		Start:   rng.Start,
		End:     rng.End,
		Summary: analytics.Aggregate(logs),
		Logs:    logs,
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal export document")
	}

	return raw, nil
}
