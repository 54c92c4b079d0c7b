// Package assistant converts a user's finance data and a free-text query
// into a reply: a canned response for small talk, a scope redirect for
// off-topic questions, or a data-driven prompt answered by an external
// generator (with a local templated fallback when none is configured).
package assistant

import (
	"context"
	"time"

	"lakshmi/internal/logger"
	"lakshmi/internal/models"
)

// ReplySource produces a text reply for a rendered prompt. Implementations
// are treated as a black box; any failure is replaced with a fixed fallback
// and never propagated.
type ReplySource interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Input carries everything a reply is computed from.
type Input struct {
	UserName     string
	Profile      *models.OnboardingProfile
	Goals        []models.Goal
	Transactions []models.Transaction
	Query        string
}

// Assistant answers finance questions from a user's own data.
type Assistant struct {
	source ReplySource
	now    func() time.Time
}

// New creates an Assistant. A nil source means replies are rendered locally
// from the user's data instead of calling an external generator.
func New(source ReplySource) *Assistant {
	return &Assistant{source: source, now: time.Now}
}

// NewWithClock creates an Assistant with a fixed clock, for tests.
func NewWithClock(source ReplySource, now func() time.Time) *Assistant {
	return &Assistant{source: source, now: now}
}

// Reply classifies the query and produces the assistant's answer. Apart
// from the external call, the same input as of a given "now" always yields
// the same result.
func (a *Assistant) Reply(ctx context.Context, in Input) string {
	if IsGreeting(in.Query) {
		return GreetingReply
	}
	if !IsFinanceScoped(in.Query) {
		return RedirectReply
	}

	data := buildPromptData(in.UserName, in.Profile, in.Goals, in.Transactions, in.Query, a.now())
	if a.source == nil {
		return renderLocalReply(data)
	}

	reply, err := a.source.Generate(ctx, renderPrompt(data))
	if err != nil {
		logger.Get().Warnw("reply source failed, using fallback", "error", err)
		return FallbackReply
	}
	if reply == "" {
		return FallbackReply
	}
	return reply
}

// BuildPrompt renders the data-driven prompt without calling the reply
// source. Exposed for tests and for inspecting what the generator sees.
func (a *Assistant) BuildPrompt(in Input) string {
	return renderPrompt(buildPromptData(in.UserName, in.Profile, in.Goals, in.Transactions, in.Query, a.now()))
}
