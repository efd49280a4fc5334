// README: Pipeline orchestrator; sequences the matching tiers and never fails its caller.
package intent

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// minQueryLength guards every tier: shorter descriptions resolve immediately
// with no match and no network calls.
const minQueryLength = 5

// ruleAcceptThreshold is the minimum rule weight the orchestrator accepts
// from the rule-table tier.
const ruleAcceptThreshold = 0.9

// RemoteClassifier is one network-backed tier (the hosted model or the
// mediation API). A nil error means a terminal result; any error triggers the
// fallback chain.
type RemoteClassifier interface {
	Classify(ctx context.Context, description string) (*IntentResult, error)
}

// Service sequences the tiers: rule table, then exactly one remote tier, then
// the local keyword classifier. AnalyzeProblem never returns an error — the
// local classifier is the guaranteed terminal fallback.
//
// Each invocation is independent; the rule table is read-only, so callers may
// run analyses concurrently without coordination. The pipeline performs no
// request deduplication: UI callers are responsible for debouncing typing and
// discarding superseded in-flight calls.
type Service struct {
	rules      RuleSet
	catalog    Catalog
	classifier *Classifier

	// remote is the Gemini tier, set only when a credential is configured.
	// mediation is used only when remote is nil: when a credential exists
	// but the model call fails, the local classifier is preferred over a
	// second network round-trip.
	remote    RemoteClassifier
	mediation RemoteClassifier
}

// NewService wires the pipeline. rules must come from NewRuleSet (ordered by
// confidence). remote and mediation may be nil; tier selection follows from
// which is present, mirroring the credential configuration.
func NewService(rules RuleSet, cat Catalog, remote, mediation RemoteClassifier) *Service {
	return &Service{
		rules:      rules,
		catalog:    cat,
		classifier: NewClassifier(cat),
		remote:     remote,
		mediation:  mediation,
	}
}

// AnalyzeProblem resolves a free-text problem description to a catalog
// service match. It always returns a result; "no match" is communicated via
// Confidence == 0 and a nil DetectedService, never via an error.
func (s *Service) AnalyzeProblem(ctx context.Context, description string) IntentResult {
	trimmed := strings.TrimSpace(description)
	if len([]rune(trimmed)) < minQueryLength {
		return noMatchResult(
			"La descripción es demasiado corta. Cuéntanos un poco más sobre tu problema.",
			trimmed, UrgencyMedia)
	}

	if res, ok := s.tryRules(ctx, trimmed); ok {
		return res
	}

	if s.remote != nil {
		if res, err := s.remote.Classify(ctx, trimmed); err == nil {
			return *res
		} else {
			log.Printf("intent: remote model tier failed, using local classifier: %v", err)
		}
	} else if s.mediation != nil {
		if res, err := s.mediation.Classify(ctx, trimmed); err == nil {
			return *res
		} else {
			log.Printf("intent: mediation tier failed, using local classifier: %v", err)
		}
	}

	return s.classifier.Classify(ctx, trimmed)
}

// tryRules runs the rule-table tier: pattern match first, synonym match as
// the looser fallback within the same tier. A rule is accepted only when its
// weight clears the threshold and its target resolves to an active catalog
// entry.
func (s *Service) tryRules(ctx context.Context, description string) (IntentResult, bool) {
	rule := s.rules.Match(description)
	if rule == nil {
		rule = s.rules.MatchBySynonym(description)
	}
	if rule == nil || rule.Confidence < ruleAcceptThreshold {
		return IntentResult{}, false
	}

	entry, err := s.catalog.GetByNameAndCategory(ctx, rule.Service, rule.Category)
	if err != nil {
		log.Printf("intent: rule %q did not resolve against catalog: %v", rule.Service, err)
		return IntentResult{}, false
	}

	alternatives, err := s.catalog.ListActive(ctx, entry.Category, disciplineLimit)
	if err != nil {
		alternatives = nil
	}

	urgency := detectUrgency(Normalize(description))
	res := newResult(entry, sameCategoryAlternatives(alternatives, *entry), rule.Confidence,
		fmt.Sprintf("Tu descripción corresponde directamente con el servicio %q.", entry.Name),
		description, urgency)
	return res, true
}
