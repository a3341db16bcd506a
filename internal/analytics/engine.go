package analytics

import (
	"context"
	"fmt"
	"sync"

	"github.com/iksnae/chatlens/internal"
)

// Engine is the stateless analytics orchestrator. It fans the four
// analyzers out over one immutable conversation snapshot; each writes a
// disjoint section of a fresh Result, so no locking is needed and a
// cancelled run never leaves a partially-written shared value behind.
type Engine struct {
	// Contextual overrides the remote scorer; tests inject fakes here.
	// When nil, a scorer is built from the config credential on demand.
	Contextual ContextualScorer
}

// NewEngine creates an Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Analyze runs all analyzers against conv and merges their sections. One
// analyzer failing (including panicking) marks only its own section
// unavailable; the others proceed. The returned error is non-nil only for
// invalid configuration or context cancellation.
func (e *Engine) Analyze(ctx context.Context, conv *internal.Conversation, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("analysis config: %w", err)
	}

	scorer := e.Contextual
	if scorer == nil && cfg.UseContextual && cfg.Credential != "" {
		scorer = NewOpenAIScorer(cfg.Credential, cfg.ContextualModel)
	}

	res := &Result{ConversationID: conv.ID}

	var wg sync.WaitGroup
	run := func(section func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			section()
		}()
	}

	run(func() {
		defer recoverSection(&res.Sentiment.Available, &res.Sentiment.Reason)
		res.Sentiment = analyzeSentiment(ctx, conv, cfg, scorer)
	})
	run(func() {
		defer recoverSection(&res.Network.Available, &res.Network.Reason)
		if !cfg.NetworkEnabled {
			res.Network = NetworkResult{Available: false, Reason: ReasonDisabled}
			return
		}
		res.Network = analyzeNetwork(conv)
	})
	run(func() {
		defer recoverSection(&res.Temporal.Available, &res.Temporal.Reason)
		res.Temporal = analyzeTemporal(conv, cfg.Temporal)
	})
	run(func() {
		defer recoverSection(&res.ContentRisk.Available, &res.ContentRisk.Reason)
		res.ContentRisk = analyzeContentRisk(conv, cfg)
	})

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// recoverSection converts an analyzer panic into an unavailable section so
// one misbehaving analyzer cannot take down the run.
func recoverSection(available *bool, reason *string) {
	if r := recover(); r != nil {
		internal.LogError("analyzer panic recovered: %v", r)
		*available = false
		*reason = ReasonPanic
	}
}
