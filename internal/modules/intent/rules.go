// README: Rule-table matcher; deterministic fast path for known high-frequency phrasings.
package intent

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MappingRule maps a phrasing pattern onto one catalog service. Exactly one
// of Phrase or Pattern is set: Phrase is a substring test, Pattern a regexp.
// A rule matches only when its pattern test succeeds AND every Required
// keyword appears in the normalized query.
type MappingRule struct {
	Phrase     string
	Pattern    *regexp.Regexp
	Service    string
	Category   string
	Synonyms   []string
	Required   []string
	Confidence float64
}

// matchesPattern runs the rule's primary pattern test against a normalized query.
func (r *MappingRule) matchesPattern(query string) bool {
	if r.Pattern != nil {
		return r.Pattern.MatchString(query)
	}
	return r.Phrase != "" && strings.Contains(query, r.Phrase)
}

// hasRequired reports whether every required keyword is present.
func (r *MappingRule) hasRequired(query string) bool {
	for _, kw := range r.Required {
		if !strings.Contains(query, kw) {
			return false
		}
	}
	return true
}

// hasAnyRequired reports whether at least one required keyword is present.
func (r *MappingRule) hasAnyRequired(query string) bool {
	for _, kw := range r.Required {
		if strings.Contains(query, kw) {
			return true
		}
	}
	return len(r.Required) == 0
}

// RuleSet is an immutable ordered rule table, highest confidence first. It is
// built once at startup and injected into the orchestrator, so tests can
// substitute a smaller table.
type RuleSet []MappingRule

// NewRuleSet copies the rules and orders them by confidence descending, so
// Match returns the strongest applicable rule.
func NewRuleSet(rules ...MappingRule) RuleSet {
	rs := make(RuleSet, len(rules))
	copy(rs, rules)
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].Confidence > rs[j].Confidence
	})
	return rs
}

// Match returns the first rule whose pattern matches the normalized query and
// whose required keywords are all present, or nil when none match. The query
// is normalized here; callers pass raw text.
func (rs RuleSet) Match(query string) *MappingRule {
	q := Normalize(query)
	for i := range rs {
		if rs[i].matchesPattern(q) && rs[i].hasRequired(q) {
			return &rs[i]
		}
	}
	return nil
}

// MatchBySynonym is the looser entry point within the same tier: a rule is
// selected when any synonym is a substring and at least one required keyword
// is present.
func (rs RuleSet) MatchBySynonym(query string) *MappingRule {
	q := Normalize(query)
	for i := range rs {
		for _, syn := range rs[i].Synonyms {
			if strings.Contains(q, syn) && rs[i].hasAnyRequired(q) {
				return &rs[i]
			}
		}
	}
	return nil
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, trims, and strips diacritics so that "Lámpara" and
// "lampara" compare equal. All rule and keyword tables are stored accent-free.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		return s
	}
	return out
}

// DefaultRules is the production rule table. Patterns and keywords are
// accent-free because Match normalizes queries before testing.
func DefaultRules() RuleSet {
	return NewRuleSet(
		MappingRule{
			Pattern:    regexp.MustCompile(`fuga|gotera|tuberia (rota|picada)`),
			Service:    "Reparación de Fugas",
			Category:   "plomeria",
			Synonyms:   []string{"gotera", "fuga de agua", "tuberia rota", "se sale el agua"},
			Required:   []string{"agua"},
			Confidence: 0.95,
		},
		MappingRule{
			Pattern:    regexp.MustCompile(`(destapar|tapado|tapada).*(drenaje|cano|wc|inodoro|lavabo)|(drenaje|cano|wc|inodoro|lavabo).*(tapado|tapada)`),
			Service:    "Destape de Drenaje",
			Category:   "plomeria",
			Synonyms:   []string{"drenaje tapado", "cano tapado", "wc tapado", "no baja el agua"},
			Required:   []string{"tapa"},
			Confidence: 0.93,
		},
		MappingRule{
			Phrase:     "calentador",
			Service:    "Reparación de Calentador",
			Category:   "plomeria",
			Synonyms:   []string{"boiler", "no hay agua caliente", "calentador descompuesto"},
			Required:   []string{"calentador"},
			Confidence: 0.9,
		},
		MappingRule{
			Pattern:    regexp.MustCompile(`instalar.*lampara|lampara.*instalar|poner.*lampara`),
			Service:    "Instalación de Lámpara",
			Category:   "electricidad",
			Synonyms:   []string{"colgar lampara", "candil", "plafon"},
			Required:   []string{"lampara"},
			Confidence: 0.98,
		},
		MappingRule{
			Pattern:    regexp.MustCompile(`corto\s?circuito|se fue la luz|huele a quemado`),
			Service:    "Revisión de Instalación Eléctrica",
			Category:   "electricidad",
			Synonyms:   []string{"corto", "chispas", "se bota la pastilla"},
			Required:   []string{},
			Confidence: 0.96,
		},
		MappingRule{
			Pattern:    regexp.MustCompile(`(cambiar|instalar).*(apagador|contacto|enchufe)`),
			Service:    "Cambio de Apagadores y Contactos",
			Category:   "electricidad",
			Synonyms:   []string{"apagador", "contacto", "enchufe"},
			Required:   []string{},
			Confidence: 0.9,
		},
		MappingRule{
			Pattern:    regexp.MustCompile(`cerradura|chapa|me quede afuera|perdi.*llaves`),
			Service:    "Cambio de Cerradura",
			Category:   "cerrajeria",
			Synonyms:   []string{"cerrajero", "chapa", "candado"},
			Required:   []string{},
			Confidence: 0.93,
		},
		MappingRule{
			Pattern:    regexp.MustCompile(`pintar.*(cuarto|recamara|casa|pared|departamento)`),
			Service:    "Pintura de Interiores",
			Category:   "pintura",
			Synonyms:   []string{"pintar", "pintura de pared"},
			Required:   []string{"pintar"},
			Confidence: 0.9,
		},
		MappingRule{
			Pattern:    regexp.MustCompile(`impermeabilizar|se filtra.*(techo|losa)`),
			Service:    "Impermeabilización de Techo",
			Category:   "albanileria",
			Synonyms:   []string{"impermeabilizante", "filtracion en techo"},
			Required:   []string{},
			Confidence: 0.92,
		},
		MappingRule{
			Pattern:    regexp.MustCompile(`(instalar|poner|cargar).*(aire acondicionado|minisplit|clima)`),
			Service:    "Instalación de Aire Acondicionado",
			Category:   "climatizacion",
			Synonyms:   []string{"minisplit", "clima", "aire acondicionado"},
			Required:   []string{},
			Confidence: 0.94,
		},
		MappingRule{
			Phrase:     "limpieza profunda",
			Service:    "Limpieza Profunda",
			Category:   "limpieza",
			Synonyms:   []string{"limpieza general", "aseo profundo"},
			Required:   []string{"limpieza"},
			Confidence: 0.91,
		},
		MappingRule{
			Pattern:    regexp.MustCompile(`podar|poda de|cortar.*(pasto|cesped|arbol)`),
			Service:    "Poda de Jardín",
			Category:   "jardineria",
			Synonyms:   []string{"poda", "cortar pasto", "jardinero"},
			Required:   []string{},
			Confidence: 0.9,
		},
	)
}
