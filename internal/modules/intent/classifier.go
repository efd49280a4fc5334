// README: Local keyword classifier; zero-dependency terminal fallback of the pipeline.
package intent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"manitas/internal/modules/catalog"
)

// Catalog is the read-only view of the service catalog the pipeline consumes.
// Implementations must only return active entries, ordered by popularity
// descending. category == "" means all disciplines.
type Catalog interface {
	ListActive(ctx context.Context, category string, limit int) ([]catalog.Entry, error)
	GetByNameAndCategory(ctx context.Context, name, category string) (*catalog.Entry, error)
}

const (
	// shortlistLimit bounds catalog-wide scans (and the remote-model prompt).
	shortlistLimit = 50
	// disciplineLimit bounds per-discipline lookups: one detected + 3
	// alternatives is all any result carries.
	disciplineLimit = 10
	// maxAlternatives caps the alternatives list in every result.
	maxAlternatives = 3
)

// Classifier is the guaranteed terminal fallback: it never returns an error.
// A failing or empty catalog degrades to a null-match result with zero
// confidence and explanatory reasoning.
type Classifier struct {
	catalog Catalog
}

func NewClassifier(cat Catalog) *Classifier {
	return &Classifier{catalog: cat}
}

// Classify scores the description against the discipline keyword tables and
// resolves the winner against the catalog, falling through to a name-overlap
// search and finally to the single most popular service.
func (c *Classifier) Classify(ctx context.Context, description string) IntentResult {
	normalized := Normalize(description)
	urgency := detectUrgency(normalized)

	scores := scoreDisciplines(normalized)
	if len(scores) == 0 {
		return c.classifyByName(ctx, description, normalized, urgency)
	}

	discipline, score := topDiscipline(scores)
	confidence := 0.5 + float64(score)/10
	if confidence > 0.95 {
		confidence = 0.95
	}

	entries, err := c.catalog.ListActive(ctx, discipline, disciplineLimit)
	if err != nil {
		return noMatchResult(reasoningUnavailable, description, urgency)
	}
	if len(entries) == 0 {
		return c.classifyByName(ctx, description, normalized, urgency)
	}

	detected := entries[0]
	alternatives := capAlternatives(entries[1:])
	return newResult(&detected, alternatives, confidence,
		disciplineReasoning(discipline, detected.Name, score), description, urgency)
}

// classifyByName is the catalog-wide fallback: match words from the
// description (longer than 3 characters) against service names.
func (c *Classifier) classifyByName(ctx context.Context, description, normalized string, urgency Urgency) IntentResult {
	entries, err := c.catalog.ListActive(ctx, "", shortlistLimit)
	if err != nil || len(entries) == 0 {
		return noMatchResult(reasoningUnavailable, description, urgency)
	}

	words := longWords(normalized)
	for _, e := range entries {
		name := Normalize(e.Name)
		for _, w := range words {
			if strings.Contains(name, w) {
				detected := e
				alternatives := sameCategoryAlternatives(entries, detected)
				return newResult(&detected, alternatives, 0.6,
					fmt.Sprintf("Tu descripción coincide con el servicio %q.", detected.Name),
					description, urgency)
			}
		}
	}

	// Nothing matched by name either: offer the single most popular service.
	detected := entries[0]
	return newResult(&detected, nil, 0.4,
		"No pudimos identificar el servicio exacto; te mostramos el más solicitado. Revisa el catálogo si no es lo que buscas.",
		description, urgency)
}

const reasoningUnavailable = "No pudimos identificar un servicio para tu descripción en este momento. Intenta de nuevo más tarde o explora el catálogo."

// disciplineReasoning hedges the message as the keyword score drops.
func disciplineReasoning(discipline, serviceName string, score int) string {
	switch {
	case score >= 3:
		return fmt.Sprintf("Tu descripción indica claramente un problema de %s. Te recomendamos %q.", discipline, serviceName)
	case score >= 2:
		return fmt.Sprintf("Parece que necesitas un servicio de %s; %q suele ser la mejor opción.", discipline, serviceName)
	default:
		return fmt.Sprintf("Podría tratarse de un trabajo de %s. Te sugerimos %q, pero revisa también las alternativas.", discipline, serviceName)
	}
}

// topDiscipline picks the highest-scoring discipline, breaking ties by name
// so results are deterministic for identical inputs.
func topDiscipline(scores map[string]int) (string, int) {
	names := make([]string, 0, len(scores))
	for d := range scores {
		names = append(names, d)
	}
	sort.Strings(names)

	best, bestScore := "", 0
	for _, d := range names {
		if scores[d] > bestScore {
			best, bestScore = d, scores[d]
		}
	}
	return best, bestScore
}

// longWords tokenizes normalized text into words longer than 3 characters.
func longWords(normalized string) []string {
	var out []string
	for _, w := range strings.Fields(normalized) {
		if len([]rune(w)) > 3 {
			out = append(out, w)
		}
	}
	return out
}

// sameCategoryAlternatives keeps up to maxAlternatives entries sharing the
// detected entry's category, excluding the entry itself. The input is already
// popularity-ordered.
func sameCategoryAlternatives(entries []catalog.Entry, detected catalog.Entry) []catalog.Entry {
	var alts []catalog.Entry
	for _, e := range entries {
		if e.ID == detected.ID || e.Category != detected.Category {
			continue
		}
		alts = append(alts, e)
		if len(alts) == maxAlternatives {
			break
		}
	}
	return alts
}

func capAlternatives(entries []catalog.Entry) []catalog.Entry {
	if len(entries) > maxAlternatives {
		entries = entries[:maxAlternatives]
	}
	if len(entries) == 0 {
		return nil
	}
	out := make([]catalog.Entry, len(entries))
	copy(out, entries)
	return out
}
