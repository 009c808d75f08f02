package dto

import "github.com/caribdigital/coralledgerblue-sub004/internal/domain"

// EvaluateResponse - outcome of one evaluation pass
type EvaluateResponse struct {
	RulesLoaded          int                  `json:"rules_loaded"`
	RulesSkippedCooldown int                  `json:"rules_skipped_cooldown"`
	RulesSkippedError    int                  `json:"rules_skipped_error"`
	RulesEvaluated       int                  `json:"rules_evaluated"`
	AlertsProduced       int                  `json:"alerts_produced"`
	ElapsedMs            int64                `json:"elapsed_ms"`
	Failures             []domain.RuleFailure `json:"failures,omitempty"`
}

// NewEvaluateResponse flattens a pass summary for the API.
func NewEvaluateResponse(s *domain.EvaluationSummary) *EvaluateResponse {
	return &EvaluateResponse{
		RulesLoaded:          s.RulesLoaded,
		RulesSkippedCooldown: s.RulesSkippedCooldown,
		RulesSkippedError:    s.RulesSkippedError,
		RulesEvaluated:       s.RulesEvaluated,
		AlertsProduced:       s.AlertsProduced,
		ElapsedMs:            s.ElapsedMs(),
		Failures:             s.Failures,
	}
}
