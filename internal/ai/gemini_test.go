package ai

import (
	"strings"
	"testing"
)

func TestCleanJSONString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n{\"a\":1}\n ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSONString(tt.in); got != tt.want {
				t.Errorf("cleanJSONString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassificationValidate(t *testing.T) {
	conf := 0.7
	bad := 1.5

	tests := []struct {
		name    string
		cls     Classification
		wantErr bool
	}{
		{"valid", Classification{ServiceName: "Reparación de Fugas", Discipline: "plomeria", Confidence: &conf}, false},
		{"no confidence is fine", Classification{ServiceName: "X", Discipline: "y"}, false},
		{"missing service_name", Classification{Discipline: "plomeria"}, true},
		{"missing discipline", Classification{ServiceName: "X"}, true},
		{"confidence out of range", Classification{ServiceName: "X", Discipline: "y", Confidence: &bad}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cls.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClassificationEffectiveConfidence(t *testing.T) {
	conf := 0.55
	if got := (&Classification{Confidence: &conf}).EffectiveConfidence(); got != 0.55 {
		t.Errorf("EffectiveConfidence = %f, want 0.55", got)
	}
	if got := (&Classification{}).EffectiveConfidence(); got != DefaultConfidence {
		t.Errorf("EffectiveConfidence = %f, want default %f", got, DefaultConfidence)
	}
}

func TestBuildClassifyPromptIncludesCatalog(t *testing.T) {
	prompt := buildClassifyPrompt("fuga de agua", []ServiceOption{
		{Name: "Reparación de Fugas", Category: "plomeria", PriceLabel: "$350 - $1200 MXN", Popularity: 120},
	})
	for _, want := range []string{"Reparación de Fugas", "plomeria", "fuga de agua", "service_name"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
