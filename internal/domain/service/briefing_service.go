package service

import (
	"context"
	"errors"
	"strings"

	"resqnet/internal/domain/entity"
)

// FallbackBriefing is shown whenever the summarizer cannot produce text.
const FallbackBriefing = "Failed to generate AI insights. Please monitor live feeds manually."

var ErrBriefingUnavailable = errors.New("briefing service unavailable")

// BriefingService is the external text-generation capability. Implementations
// report failure through the error; callers pick the fallback value.
type BriefingService interface {
	SummarizeBriefing(ctx context.Context, disasters []entity.Disaster) (string, error)
	RateSeverity(ctx context.Context, description string) (entity.Severity, error)
}

// SeverityOrFallback resolves a rating result to one of the four ratings,
// defaulting to Medium on error or on any other value.
func SeverityOrFallback(severity entity.Severity, err error) entity.Severity {
	if err != nil {
		return entity.SeverityMedium
	}
	parsed, perr := entity.ParseSeverity(string(severity))
	if perr != nil {
		return entity.SeverityMedium
	}
	return parsed
}

func BriefingOrFallback(text string, err error) string {
	if err != nil || strings.TrimSpace(text) == "" {
		return FallbackBriefing
	}
	return text
}

// DisabledBriefingService is used when no model credentials are configured.
type DisabledBriefingService struct{}

func (DisabledBriefingService) SummarizeBriefing(context.Context, []entity.Disaster) (string, error) {
	return "", ErrBriefingUnavailable
}

func (DisabledBriefingService) RateSeverity(context.Context, string) (entity.Severity, error) {
	return "", ErrBriefingUnavailable
}
