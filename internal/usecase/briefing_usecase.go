package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"resqnet/internal/domain/entity"
	"resqnet/internal/domain/repository"
	"resqnet/internal/domain/service"
	"resqnet/pkg/logger"
)

// Briefing is the situational summary shown to government officials.
type Briefing struct {
	Text        string    `json:"text"`
	Fallback    bool      `json:"fallback"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// BriefingUseCase caches the AI briefing and refreshes it on a schedule.
type BriefingUseCase struct {
	base
	briefer service.BriefingService
	timeout time.Duration

	mu     sync.RWMutex
	cached *Briefing
	cron   *cron.Cron
}

func NewBriefingUseCase(store repository.EntityStore, briefer service.BriefingService, timeout time.Duration, opts ...Option) *BriefingUseCase {
	if briefer == nil {
		briefer = service.DisabledBriefingService{}
	}
	return &BriefingUseCase{
		base:    newBase(store, opts),
		briefer: briefer,
		timeout: timeout,
	}
}

// Refresh summarizes every disaster and replaces the cached briefing. AI
// failures produce the fallback text, never an error.
func (uc *BriefingUseCase) Refresh(ctx context.Context) (*Briefing, error) {
	disasters, err := load[entity.Disaster](ctx, &uc.base, repository.DisastersKey)
	if err != nil {
		return nil, err
	}

	aiCtx := ctx
	if uc.timeout > 0 {
		var cancel context.CancelFunc
		aiCtx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	text, err := uc.briefer.SummarizeBriefing(aiCtx, disasters)
	uc.recorder.ObserveAI("summarize_briefing", err)
	if err != nil {
		logger.Warn("Briefing generation failed, using fallback: %v", err)
	}

	b := &Briefing{
		Text:        service.BriefingOrFallback(text, err),
		GeneratedAt: uc.now().UTC(),
	}
	b.Fallback = b.Text == service.FallbackBriefing

	uc.mu.Lock()
	uc.cached = b
	uc.mu.Unlock()
	return b, nil
}

// Current returns the cached briefing, generating one on first use.
func (uc *BriefingUseCase) Current(ctx context.Context) (*Briefing, error) {
	uc.mu.RLock()
	b := uc.cached
	uc.mu.RUnlock()
	if b != nil {
		return b, nil
	}
	return uc.Refresh(ctx)
}

// StartScheduler refreshes the briefing on the given cron spec, e.g. "@every 10m".
func (uc *BriefingUseCase) StartScheduler(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if _, err := uc.Refresh(context.Background()); err != nil {
			logger.Error("Scheduled briefing refresh failed: %v", err)
		}
	}); err != nil {
		return err
	}
	c.Start()

	uc.mu.Lock()
	uc.cron = c
	uc.mu.Unlock()
	logger.Info("Briefing refresh scheduled: %s", spec)
	return nil
}

// StopScheduler waits for a running refresh to finish.
func (uc *BriefingUseCase) StopScheduler() {
	uc.mu.Lock()
	c := uc.cron
	uc.cron = nil
	uc.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}
