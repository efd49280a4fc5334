// README: Remote model tier; shortlists the catalog, delegates judgement to the model, resolves the answer.
package intent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"manitas/internal/ai"
	"manitas/internal/modules/catalog"
)

// defaultRemoteTimeout preserves the always-resolves guarantee when the
// hosted model hangs under degraded network conditions.
const defaultRemoteTimeout = 8 * time.Second

// RemoteResolver drives the hosted generative model tier. Every failure mode
// (empty catalog, transport error, unparseable answer, unresolvable service
// name) is reported as ErrRemoteModel so the orchestrator falls back.
type RemoteResolver struct {
	model   ai.IntentModel
	catalog Catalog
	timeout time.Duration
}

func NewRemoteResolver(model ai.IntentModel, cat Catalog, timeout time.Duration) *RemoteResolver {
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	return &RemoteResolver{model: model, catalog: cat, timeout: timeout}
}

// Classify asks the model to pick a service from a popularity-ordered
// shortlist and resolves the answer back to a catalog entry.
func (r *RemoteResolver) Classify(ctx context.Context, description string) (*IntentResult, error) {
	entries, err := r.catalog.ListActive(ctx, "", shortlistLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog shortlist: %v", ErrRemoteModel, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrRemoteModel)
	}

	options := make([]ai.ServiceOption, len(entries))
	for i, e := range entries {
		options[i] = ai.ServiceOption{
			Name:       e.Name,
			Category:   e.Category,
			PriceLabel: e.PriceRange().Label(),
			Popularity: e.Popularity,
		}
	}

	mctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cls, err := r.model.ClassifyService(mctx, description, options)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteModel, err)
	}

	detected, err := r.resolveEntry(ctx, cls, entries)
	if err != nil {
		return nil, err
	}

	alternatives, err := r.alternativesFor(ctx, *detected)
	if err != nil {
		// Alternatives are a nicety; a lookup failure should not void a
		// resolved match.
		alternatives = nil
	}

	res := newResult(detected, alternatives, cls.EffectiveConfidence(),
		cls.Reasoning, description, ParseUrgency(cls.Urgency))
	return &res, nil
}

// resolveEntry maps the model's service_name onto a catalog entry in three
// steps: exact case-insensitive name match, word-overlap match within the
// model's discipline, then the most popular entry in that discipline.
func (r *RemoteResolver) resolveEntry(ctx context.Context, cls *ai.Classification, shortlist []catalog.Entry) (*catalog.Entry, error) {
	wantName := Normalize(cls.ServiceName)
	for i := range shortlist {
		if Normalize(shortlist[i].Name) == wantName {
			return &shortlist[i], nil
		}
	}

	words := longWords(wantName)
	for i := range shortlist {
		if shortlist[i].Category != cls.Discipline {
			continue
		}
		name := Normalize(shortlist[i].Name)
		for _, w := range words {
			if strings.Contains(name, w) {
				return &shortlist[i], nil
			}
		}
	}

	inDiscipline, err := r.catalog.ListActive(ctx, cls.Discipline, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: discipline lookup: %v", ErrRemoteModel, err)
	}
	if len(inDiscipline) == 0 {
		return nil, fmt.Errorf("%w: model answer %q resolves to no catalog entry", ErrRemoteModel, cls.ServiceName)
	}
	return &inDiscipline[0], nil
}

func (r *RemoteResolver) alternativesFor(ctx context.Context, detected catalog.Entry) ([]catalog.Entry, error) {
	entries, err := r.catalog.ListActive(ctx, detected.Category, disciplineLimit)
	if err != nil {
		return nil, err
	}
	return sameCategoryAlternatives(entries, detected), nil
}
