package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/domain/repository"
	"github.com/caribdigital/coralledgerblue-sub004/internal/observability"
)

// Evaluation pass triggers, used as the metrics label and in pass logs.
const (
	TriggerScheduled = "scheduled"
	TriggerManual    = "manual"
	TriggerStream    = "stream"
)

// readingRecency bounds how far back reading-driven rules look. Satellite
// products land daily; older readings already had their chance to fire.
const readingRecency = 24 * time.Hour

// observationRecency bounds how far back citizen-report rules look.
const observationRecency = 24 * time.Hour

// EngineUseCase runs alert rules against the monitoring feeds and turns
// matches into persisted, dispatched alerts.
type EngineUseCase struct {
	ruleRepo        repository.RuleRepository
	alertRepo       repository.AlertRepository
	areaRepo        repository.AreaRepository
	readingRepo     repository.ReadingRepository
	vesselRepo      repository.VesselRepository
	observationRepo repository.ObservationRepository
	dispatcher      *DispatchUseCase
	metrics         *observability.EngineCollector
	logger          *zap.Logger
	ruleTimeout     time.Duration
	alertTTL        time.Duration
}

// NewEngineUseCase creates the rule engine.
func NewEngineUseCase(
	ruleRepo repository.RuleRepository,
	alertRepo repository.AlertRepository,
	areaRepo repository.AreaRepository,
	readingRepo repository.ReadingRepository,
	vesselRepo repository.VesselRepository,
	observationRepo repository.ObservationRepository,
	dispatcher *DispatchUseCase,
	metrics *observability.EngineCollector,
	logger *zap.Logger,
	ruleTimeout time.Duration,
	alertTTL time.Duration,
) *EngineUseCase {
	return &EngineUseCase{
		ruleRepo:        ruleRepo,
		alertRepo:       alertRepo,
		areaRepo:        areaRepo,
		readingRepo:     readingRepo,
		vesselRepo:      vesselRepo,
		observationRepo: observationRepo,
		dispatcher:      dispatcher,
		metrics:         metrics,
		logger:          logger,
		ruleTimeout:     ruleTimeout,
		alertTTL:        alertTTL,
	}
}

// EvaluateAll runs every active rule once and returns the candidate
// alerts. Nothing is persisted or delivered here; callers hand the
// candidates to Persist.
func (uc *EngineUseCase) EvaluateAll(ctx context.Context) ([]*domain.Alert, *domain.EvaluationSummary, error) {
	rules, err := uc.ruleRepo.GetActive(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load active rules: %w", err)
	}
	alerts, summary := uc.evaluateRules(ctx, rules)
	return alerts, summary, nil
}

// EvaluateOne runs a single rule, used for administrative re-runs. The
// cooldown gate still applies; an inactive rule is skipped the same way a
// cooling-down rule is.
func (uc *EngineUseCase) EvaluateOne(ctx context.Context, ruleID uuid.UUID) ([]*domain.Alert, *domain.EvaluationSummary, error) {
	rule, err := uc.ruleRepo.GetByID(ctx, ruleID)
	if err != nil {
		return nil, nil, err
	}
	alerts, summary := uc.evaluateRules(ctx, []*domain.AlertRule{rule})
	return alerts, summary, nil
}

// EvaluateByType runs only the active rules of one alert type, used by
// ingest pipelines that want their fresh data checked immediately.
func (uc *EngineUseCase) EvaluateByType(ctx context.Context, alertType domain.AlertType) ([]*domain.Alert, *domain.EvaluationSummary, error) {
	rules, err := uc.ruleRepo.GetActiveByType(ctx, alertType)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s rules: %w", alertType, err)
	}
	alerts, summary := uc.evaluateRules(ctx, rules)
	return alerts, summary, nil
}

// evaluateRules is the result-collecting fold at the engine's core: every
// rule is tried, failures are recorded and skipped, and one bad rule never
// blocks the rest of the pass.
func (uc *EngineUseCase) evaluateRules(ctx context.Context, rules []*domain.AlertRule) ([]*domain.Alert, *domain.EvaluationSummary) {
	started := time.Now()
	now := started.UTC()
	summary := &domain.EvaluationSummary{StartedAt: now, RulesLoaded: len(rules)}

	var alerts []*domain.Alert
	for _, rule := range rules {
		if ctx.Err() != nil {
			uc.logger.Warn("Evaluation pass cancelled",
				zap.Int("rules_evaluated", summary.RulesEvaluated),
				zap.Int("rules_loaded", summary.RulesLoaded))
			break
		}
		if !rule.IsEligible(now) {
			summary.RulesSkippedCooldown++
			continue
		}

		produced, err := uc.evaluateRule(ctx, rule, now)
		if err != nil {
			summary.RulesSkippedError++
			summary.Failures = append(summary.Failures, domain.RuleFailure{
				RuleID:   rule.ID,
				RuleName: rule.Name,
				Reason:   err.Error(),
			})
			uc.logger.Warn("Rule evaluation failed, skipping",
				zap.String("rule_id", rule.ID.String()),
				zap.String("rule_name", rule.Name),
				zap.Error(err))
			continue
		}

		summary.RulesEvaluated++
		alerts = append(alerts, produced...)
	}

	summary.AlertsProduced = len(alerts)
	summary.Elapsed = time.Since(started)
	return alerts, summary
}

// evaluateRule decodes the rule's conditions and hands off to the
// evaluator for its type, bounded by the per-rule timeout.
func (uc *EngineUseCase) evaluateRule(ctx context.Context, rule *domain.AlertRule, now time.Time) ([]*domain.Alert, error) {
	cond, err := domain.DecodeConditions(rule.Type, rule.Conditions)
	if err != nil {
		return nil, fmt.Errorf("decode conditions: %w", err)
	}

	ruleCtx, cancel := context.WithTimeout(ctx, uc.ruleTimeout)
	defer cancel()

	switch c := cond.(type) {
	case *domain.BleachingCondition:
		return uc.evalBleaching(ruleCtx, rule, c, now)
	case *domain.TemperatureCondition:
		return uc.evalTemperature(ruleCtx, rule, c, now)
	case *domain.FishingActivityCondition:
		return uc.evalFishing(ruleCtx, rule, c, now)
	case *domain.VesselInMPACondition:
		return uc.evalVesselInMPA(ruleCtx, rule, c, now)
	case *domain.VesselDarkCondition:
		return uc.evalVesselDark(ruleCtx, rule, c, now)
	case *domain.CitizenObservationCondition:
		return uc.evalObservation(ruleCtx, rule, c, now)
	default:
		return nil, fmt.Errorf("no evaluator for rule type %s", rule.Type)
	}
}

// Persist stores the batch and stamps every source rule inside one
// transaction, then dispatches each alert. Nothing is delivered when the
// transaction fails.
func (uc *EngineUseCase) Persist(ctx context.Context, alerts []*domain.Alert) (int, error) {
	if len(alerts) == 0 {
		return 0, nil
	}
	if err := uc.alertRepo.PersistBatch(ctx, alerts, time.Now().UTC()); err != nil {
		return 0, fmt.Errorf("persist alerts: %w", err)
	}

	rules := make(map[uuid.UUID]*domain.AlertRule)
	for _, alert := range alerts {
		uc.metrics.ObserveAlert(alert)

		rule, ok := rules[alert.RuleID]
		if !ok {
			loaded, err := uc.ruleRepo.GetByID(ctx, alert.RuleID)
			if err != nil {
				uc.logger.Error("Alert persisted but owning rule unavailable, delivery skipped",
					zap.String("alert_id", alert.ID.String()),
					zap.String("rule_id", alert.RuleID.String()),
					zap.Error(err))
				continue
			}
			rules[alert.RuleID] = loaded
			rule = loaded
		}
		uc.dispatcher.Dispatch(ctx, alert, rule)
	}
	return len(alerts), nil
}

// EvaluateAndDispatch is the full pass the scheduler and the manual
// trigger run: evaluate every active rule, persist what fired, deliver.
func (uc *EngineUseCase) EvaluateAndDispatch(ctx context.Context, trigger string) (*domain.EvaluationSummary, error) {
	alerts, summary, err := uc.EvaluateAll(ctx)
	if err != nil {
		return nil, err
	}
	return uc.finishPass(ctx, trigger, alerts, summary)
}

// EvaluateAndDispatchOne is EvaluateAndDispatch for a single rule.
func (uc *EngineUseCase) EvaluateAndDispatchOne(ctx context.Context, trigger string, ruleID uuid.UUID) (*domain.EvaluationSummary, error) {
	alerts, summary, err := uc.EvaluateOne(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	return uc.finishPass(ctx, trigger, alerts, summary)
}

// EvaluateAndDispatchByType is EvaluateAndDispatch for one alert type.
func (uc *EngineUseCase) EvaluateAndDispatchByType(ctx context.Context, trigger string, alertType domain.AlertType) (*domain.EvaluationSummary, error) {
	alerts, summary, err := uc.EvaluateByType(ctx, alertType)
	if err != nil {
		return nil, err
	}
	return uc.finishPass(ctx, trigger, alerts, summary)
}

func (uc *EngineUseCase) finishPass(ctx context.Context, trigger string, alerts []*domain.Alert, summary *domain.EvaluationSummary) (*domain.EvaluationSummary, error) {
	if _, err := uc.Persist(ctx, alerts); err != nil {
		return nil, err
	}
	uc.metrics.ObservePass(trigger, summary)
	uc.logger.Info("Evaluation pass finished",
		zap.String("trigger", trigger),
		zap.Int("rules_loaded", summary.RulesLoaded),
		zap.Int("rules_evaluated", summary.RulesEvaluated),
		zap.Int("skipped_cooldown", summary.RulesSkippedCooldown),
		zap.Int("skipped_error", summary.RulesSkippedError),
		zap.Int("alerts_produced", summary.AlertsProduced),
		zap.Int64("elapsed_ms", summary.ElapsedMs()))
	return summary, nil
}

// newAlert stamps the fields every evaluator fills the same way.
func (uc *EngineUseCase) newAlert(rule *domain.AlertRule, now time.Time) *domain.Alert {
	return &domain.Alert{
		ID:        uuid.New(),
		RuleID:    rule.ID,
		Type:      rule.Type,
		Severity:  rule.Severity,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.alertTTL),
	}
}

// areaMap loads every protected area keyed by ID. Evaluators that need
// area names, no-take flags or centroids share one load per rule.
func (uc *EngineUseCase) areaMap(ctx context.Context) (map[uuid.UUID]*domain.ProtectedArea, error) {
	areas, err := uc.areaRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load protected areas: %w", err)
	}
	m := make(map[uuid.UUID]*domain.ProtectedArea, len(areas))
	for _, a := range areas {
		m[a.ID] = a
	}
	return m, nil
}
