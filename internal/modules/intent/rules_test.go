// README: Rule-table matcher tests.
package intent

import (
	"regexp"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Fuga de Agua  ", "fuga de agua"},
		{"Instalación de Lámpara", "instalacion de lampara"},
		{"ELECTRICISTA", "electricista"},
		{"baño", "bano"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultRulesMatch(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name        string
		query       string
		wantService string
		wantConf    float64
	}{
		{
			name:        "plumbing leak",
			query:       "tengo una fuga de agua en el baño",
			wantService: "Reparación de Fugas",
			wantConf:    0.95,
		},
		{
			name:        "lamp installation",
			query:       "necesito instalar una lámpara en mi sala",
			wantService: "Instalación de Lámpara",
			wantConf:    0.98,
		},
		{
			name:        "short circuit",
			query:       "huele a quemado cerca del apagador",
			wantService: "Revisión de Instalación Eléctrica",
			wantConf:    0.96,
		},
		{
			name:        "locked out",
			query:       "me quedé afuera de mi casa, perdí las llaves",
			wantService: "Cambio de Cerradura",
			wantConf:    0.93,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := rules.Match(tt.query)
			if rule == nil {
				t.Fatalf("Match(%q) = nil, want %q", tt.query, tt.wantService)
			}
			if rule.Service != tt.wantService {
				t.Errorf("service = %q, want %q", rule.Service, tt.wantService)
			}
			if rule.Confidence != tt.wantConf {
				t.Errorf("confidence = %f, want %f", rule.Confidence, tt.wantConf)
			}
		})
	}
}

func TestDefaultRulesNoMatch(t *testing.T) {
	rules := DefaultRules()
	for _, q := range []string{
		"quiero comprar un coche nuevo",
		"hay una fuga en mi casa", // pattern hits but required keyword "agua" is absent
	} {
		if rule := rules.Match(q); rule != nil {
			t.Errorf("Match(%q) = %q, want nil", q, rule.Service)
		}
	}
}

func TestMatchBySynonym(t *testing.T) {
	rules := DefaultRules()

	rule := rules.MatchBySynonym("hay una gotera y está cayendo agua del techo")
	if rule == nil || rule.Service != "Reparación de Fugas" {
		t.Fatalf("expected leak rule via synonym, got %+v", rule)
	}

	// Synonym present but no required keyword: not selected.
	if rule := rules.MatchBySynonym("tengo una gotera"); rule != nil && rule.Service == "Reparación de Fugas" {
		t.Errorf("leak rule selected without required keyword: %+v", rule)
	}
}

func TestNewRuleSetOrdersByConfidence(t *testing.T) {
	rs := NewRuleSet(
		MappingRule{Phrase: "bbb", Service: "B", Confidence: 0.5},
		MappingRule{Phrase: "aaa", Service: "A", Confidence: 0.9},
		MappingRule{Phrase: "ccc", Service: "C", Confidence: 0.7},
	)
	for i := 1; i < len(rs); i++ {
		if rs[i-1].Confidence < rs[i].Confidence {
			t.Fatalf("rule set not ordered by confidence: %v", rs)
		}
	}

	// The strongest applicable rule wins when several match.
	matched := NewRuleSet(
		MappingRule{Phrase: "agua", Service: "Weak", Confidence: 0.5},
		MappingRule{Phrase: "agua", Service: "Strong", Confidence: 0.9},
	).Match("fuga de agua")
	if matched == nil || matched.Service != "Strong" {
		t.Fatalf("expected strongest matching rule, got %+v", matched)
	}
}

func TestRulePatternAndRequired(t *testing.T) {
	rule := MappingRule{
		Pattern:    regexp.MustCompile(`instalar.*lampara`),
		Service:    "Instalación de Lámpara",
		Category:   "electricidad",
		Required:   []string{"lampara"},
		Confidence: 0.98,
	}
	rs := NewRuleSet(rule)

	if rs.Match("quiero instalar una lámpara nueva") == nil {
		t.Error("expected pattern + required match")
	}
	if rs.Match("quiero instalar un ventilador") != nil {
		t.Error("match without required keyword")
	}
}
