// README: Remote model tier tests (name resolution ladder, confidence trust, failure typing).
package intent

import (
	"context"
	"errors"
	"testing"
	"time"

	"manitas/internal/ai"
)

type fakeModel struct {
	cls   *ai.Classification
	err   error
	calls int
	// gotOptions captures the shortlist for assertions.
	gotOptions []ai.ServiceOption
}

func (f *fakeModel) ClassifyService(ctx context.Context, description string, services []ai.ServiceOption) (*ai.Classification, error) {
	f.calls++
	f.gotOptions = services
	if f.err != nil {
		return nil, f.err
	}
	return f.cls, nil
}

func floatPtr(v float64) *float64 { return &v }

func TestRemoteClassifyExactNameMatch(t *testing.T) {
	cat := &fakeCatalog{entries: testEntries()}
	model := &fakeModel{cls: &ai.Classification{
		ServiceName: "instalación de lámpara", // case/accents differ from the catalog
		Discipline:  "electricidad",
		Confidence:  floatPtr(0.92),
		Reasoning:   "El cliente necesita colgar una lámpara.",
		Urgency:     "baja",
	}}
	r := NewRemoteResolver(model, cat, time.Second)

	res, err := r.Classify(context.Background(), "quiero colgar un candil en la sala")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if res.DetectedService.ID != "svc-lampara" {
		t.Errorf("detected = %s, want svc-lampara", res.DetectedService.ID)
	}
	if res.Confidence != 0.92 {
		t.Errorf("confidence = %f, want the model's self-reported 0.92", res.Confidence)
	}
	if res.PreFilled.Urgencia != UrgencyBaja {
		t.Errorf("urgencia = %s, want baja", res.PreFilled.Urgencia)
	}
	assertAlternativesInvariant(t, *res)
}

func TestRemoteClassifyWordOverlapMatch(t *testing.T) {
	cat := &fakeCatalog{entries: testEntries()}
	model := &fakeModel{cls: &ai.Classification{
		ServiceName: "Instalación Lámpara Techo", // no exact entry; shares "lampara"
		Discipline:  "electricidad",
	}}
	r := NewRemoteResolver(model, cat, time.Second)

	res, err := r.Classify(context.Background(), "poner una lámpara en el techo")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if res.DetectedService.ID != "svc-lampara" {
		t.Errorf("detected = %s, want svc-lampara via word overlap", res.DetectedService.ID)
	}
	if res.Confidence != ai.DefaultConfidence {
		t.Errorf("confidence = %f, want default %f when the model omits it", res.Confidence, ai.DefaultConfidence)
	}
}

func TestRemoteClassifyDisciplineFallback(t *testing.T) {
	cat := &fakeCatalog{entries: testEntries()}
	model := &fakeModel{cls: &ai.Classification{
		ServiceName: "Servicio Fantasma",
		Discipline:  "plomeria",
		Confidence:  floatPtr(0.9),
	}}
	r := NewRemoteResolver(model, cat, time.Second)

	res, err := r.Classify(context.Background(), "problema raro con el agua")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if res.DetectedService.ID != "svc-fugas" {
		t.Errorf("detected = %s, want most popular plomeria entry svc-fugas", res.DetectedService.ID)
	}
}

func TestRemoteClassifyUnresolvableDiscipline(t *testing.T) {
	cat := &fakeCatalog{entries: testEntries()}
	model := &fakeModel{cls: &ai.Classification{
		ServiceName: "Servicio Fantasma",
		Discipline:  "disciplina-fantasma",
	}}
	r := NewRemoteResolver(model, cat, time.Second)

	_, err := r.Classify(context.Background(), "algo muy raro pasó")
	if !errors.Is(err, ErrRemoteModel) {
		t.Fatalf("err = %v, want ErrRemoteModel", err)
	}
}

func TestRemoteClassifyModelError(t *testing.T) {
	cat := &fakeCatalog{entries: testEntries()}
	model := &fakeModel{err: errors.New("429 resource exhausted")}
	r := NewRemoteResolver(model, cat, time.Second)

	_, err := r.Classify(context.Background(), "fuga de agua en el baño")
	if !errors.Is(err, ErrRemoteModel) {
		t.Fatalf("err = %v, want ErrRemoteModel", err)
	}
}

func TestRemoteClassifyEmptyCatalog(t *testing.T) {
	cat := &fakeCatalog{}
	model := &fakeModel{}
	r := NewRemoteResolver(model, cat, time.Second)

	_, err := r.Classify(context.Background(), "fuga de agua en el baño")
	if !errors.Is(err, ErrRemoteModel) {
		t.Fatalf("err = %v, want ErrRemoteModel", err)
	}
	if model.calls != 0 {
		t.Errorf("model called %d times with an empty catalog", model.calls)
	}
}

func TestRemoteClassifyShortlistBound(t *testing.T) {
	cat := &fakeCatalog{entries: testEntries()}
	model := &fakeModel{cls: &ai.Classification{
		ServiceName: "Reparación de Fugas",
		Discipline:  "plomeria",
	}}
	r := NewRemoteResolver(model, cat, time.Second)

	if _, err := r.Classify(context.Background(), "fuga de agua"); err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if len(model.gotOptions) == 0 || len(model.gotOptions) > shortlistLimit {
		t.Errorf("shortlist size = %d, want 1..%d", len(model.gotOptions), shortlistLimit)
	}
	for _, opt := range model.gotOptions {
		if opt.Name == "Reparación de Fugas Premium" {
			t.Error("inactive entry offered to the model")
		}
	}
}
