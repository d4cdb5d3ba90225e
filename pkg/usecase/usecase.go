package usecase

import (
	"time"

	"github.com/chunpat/life-pulse-ai/pkg/domain/interfaces"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
	"github.com/chunpat/life-pulse-ai/pkg/service/llm"
)

// DefaultGuestMaxLogs is the canonical guest write ceiling. The source
// documented both 3 and 50 in different places; 50 is the storage policy.
const DefaultGuestMaxLogs = 50

// UseCases bundles all business logic entry points
type UseCases struct {
	repo interfaces.Repository

	Log       *LogUseCase
	Finance   *FinanceUseCase
	Analytics *AnalyticsUseCase
	Insight   *InsightUseCase
	Auth      *AuthUseCase
	Export    *ExportUseCase

	parseSvc     llm.ParseService
	insightSvc   llm.InsightService
	guestMaxLogs int
	location     *time.Location
	language     string
	labels       map[types.Category]string
	jwtSecret    []byte
}

type Option func(*UseCases)

// WithParseService sets the LLM parse collaborator
func WithParseService(svc llm.ParseService) Option {
	return func(uc *UseCases) {
		uc.parseSvc = svc
	}
}

// WithInsightService sets the LLM insight collaborator
func WithInsightService(svc llm.InsightService) Option {
	return func(uc *UseCases) {
		uc.insightSvc = svc
	}
}

// WithGuestMaxLogs overrides the guest log quota
func WithGuestMaxLogs(n int) Option {
	return func(uc *UseCases) {
		if n > 0 {
			uc.guestMaxLogs = n
		}
	}
}

// WithLocation sets the timezone used for period boundary resolution
func WithLocation(loc *time.Location) Option {
	return func(uc *UseCases) {
		if loc != nil {
			uc.location = loc
		}
	}
}

// WithLanguage sets the language for LLM-generated text fields
func WithLanguage(lang string) Option {
	return func(uc *UseCases) {
		uc.language = lang
	}
}

// WithCategoryLabels sets localized display labels, applied only at the
// export/display formatting boundary
func WithCategoryLabels(labels map[types.Category]string) Option {
	return func(uc *UseCases) {
		uc.labels = labels
	}
}

// WithJWTSecret sets the signing secret for auth tokens
func WithJWTSecret(secret []byte) Option {
	return func(uc *UseCases) {
		uc.jwtSecret = secret
	}
}

// Location returns the timezone used for period boundary resolution
func (uc *UseCases) Location() *time.Location {
	return uc.location
}

// New creates the use case bundle
func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:         repo,
		guestMaxLogs: DefaultGuestMaxLogs,
		location:     time.Local,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Log = newLogUseCase(repo, uc.parseSvc, uc.guestMaxLogs)
	uc.Finance = newFinanceUseCase(repo)
	uc.Analytics = newAnalyticsUseCase(repo, uc.location)
	uc.Insight = newInsightUseCase(repo, uc.insightSvc, uc.location, uc.language)
	uc.Auth = newAuthUseCase(repo, uc.jwtSecret)
	uc.Export = newExportUseCase(repo, uc.location, uc.labels)

	return uc
}
