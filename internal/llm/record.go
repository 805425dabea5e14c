package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/million-dollar-projects/mumskids-sub000/internal/store"
)

type purposeKey struct{}

// WithPurpose labels requests made with ctx, e.g. "story".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return "unknown"
}

// RecordingProvider stores an llm_request event for every call.
type RecordingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
}

// WithRecording wraps p. A nil repo disables recording.
func WithRecording(p Provider, providerName string, events store.EventRepo) Provider {
	if events == nil {
		return p
	}
	return &RecordingProvider{inner: p, provider: providerName, events: events}
}

func (r *RecordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := r.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:  r.provider,
		Model:     r.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	// A lost event must not fail the request.
	if rerr := r.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); rerr != nil {
		slog.Warn("record llm request", "purpose", ev.Purpose, "err", rerr)
	}
	return resp, err
}

func (r *RecordingProvider) ModelID() string { return r.inner.ModelID() }
