package domain

import (
	"time"

	"github.com/google/uuid"
)

// RuleFailure records one rule that could not be evaluated during a pass.
type RuleFailure struct {
	RuleID   uuid.UUID `json:"rule_id"`
	RuleName string    `json:"rule_name"`
	Reason   string    `json:"reason"`
}

// EvaluationSummary describes one full evaluation pass. Every pass produces
// one, including passes that trigger nothing.
type EvaluationSummary struct {
	StartedAt            time.Time     `json:"started_at"`
	RulesLoaded          int           `json:"rules_loaded"`
	RulesSkippedCooldown int           `json:"rules_skipped_cooldown"`
	RulesSkippedError    int           `json:"rules_skipped_error"`
	RulesEvaluated       int           `json:"rules_evaluated"`
	AlertsProduced       int           `json:"alerts_produced"`
	Failures             []RuleFailure `json:"failures,omitempty"`
	Elapsed              time.Duration `json:"elapsed"`
}

// ElapsedMs returns the pass duration in whole milliseconds for logs and
// API responses.
func (s *EvaluationSummary) ElapsedMs() int64 {
	return s.Elapsed.Milliseconds()
}
