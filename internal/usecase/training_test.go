package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"QuantCore/internal/domain/models"
)

type storeStub struct {
	mu     sync.Mutex
	stored []*models.TrainingRow
}

func (s *storeStub) Init(context.Context) error { return nil }

func (s *storeStub) StoreBatch(_ context.Context, rows []*models.TrainingRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stored = append(s.stored, rows...)
	return nil
}

func (s *storeStub) Query(context.Context, string, time.Time, time.Time, int) ([]*models.TrainingRow, error) {
	return nil, nil
}
func (s *storeStub) Health(context.Context) error { return nil }
func (s *storeStub) Close() error                 { return nil }

type publisherStub struct {
	mu        sync.Mutex
	published []*models.TrainingRow
}

func (p *publisherStub) Publish(_ context.Context, row *models.TrainingRow) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, row)
	return nil
}

func (p *publisherStub) PublishBatch(_ context.Context, rows []*models.TrainingRow) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, rows...)
	return nil
}

func (p *publisherStub) Close() error { return nil }

func TestLabel(t *testing.T) {
	cases := []struct {
		changePct float64
		band      float64
		want      string
	}{
		{2.0, 0.5, models.LabelUp},
		{-2.0, 0.5, models.LabelDown},
		{0.3, 0.5, models.LabelNeutral},
		{-0.3, 0.5, models.LabelNeutral},
		{0.5, 0.5, models.LabelNeutral},
		{-0.5, 0.5, models.LabelNeutral},
		{0.1, 0, models.LabelUp},
		{0, 0, models.LabelNeutral},
	}
	for _, tc := range cases {
		if got := Label(tc.changePct, tc.band); got != tc.want {
			t.Fatalf("Label(%v, %v) = %s, want %s", tc.changePct, tc.band, got, tc.want)
		}
	}
}

func TestBuildRows(t *testing.T) {
	m := newRecorderStub()
	svc := newService(m)
	builder := NewTrainingBuilder(svc, nil, nil, m, nil)
	s := testBars(60)

	rows, err := builder.BuildRows(context.Background(), "AAPL", s, s[10].Date, s[50].Date, 0.5, false)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(rows) != 41 {
		t.Fatalf("rows = %d, want 41 (one per bar in range)", len(rows))
	}
	for _, r := range rows {
		if r.Symbol != "AAPL" {
			t.Fatalf("symbol = %s", r.Symbol)
		}
		if r.Label != models.LabelUp && r.Label != models.LabelDown && r.Label != models.LabelNeutral {
			t.Fatalf("unexpected label %q", r.Label)
		}
		if r.Label != Label(r.ChangePct, 0.5) {
			t.Fatalf("label %q inconsistent with changePct %v", r.Label, r.ChangePct)
		}
		if r.BasisDate >= r.TargetDate {
			t.Fatalf("basis %s not before target %s", r.BasisDate, r.TargetDate)
		}
		if len(r.Features) == 0 {
			t.Fatal("row carries no features")
		}
	}
	if m.rows != 41 {
		t.Fatalf("recorded rows = %d", m.rows)
	}
}

func TestBuildRowsSkipsShortHistory(t *testing.T) {
	svc := newService(newRecorderStub())
	builder := NewTrainingBuilder(svc, nil, nil, nil, nil)
	s := testBars(20)

	// The first bars cannot anchor a basis; they are skipped, not errors.
	rows, err := builder.BuildRows(context.Background(), "AAPL", s, s[0].Date, s[19].Date, 0.5, false)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// Bars 0..2 cannot anchor a basis and are skipped; bars 3..19 each
	// produce a row.
	if len(rows) != 17 {
		t.Fatalf("rows = %d, want 17", len(rows))
	}
}

func TestBuildRowsPersist(t *testing.T) {
	store := &storeStub{}
	pub := &publisherStub{}
	svc := newService(newRecorderStub())
	builder := NewTrainingBuilder(svc, store, pub, nil, nil)
	s := testBars(40)

	rows, err := builder.BuildRows(context.Background(), "AAPL", s, s[10].Date, s[30].Date, 0.5, true)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(store.stored) != len(rows) {
		t.Fatalf("stored %d rows, want %d", len(store.stored), len(rows))
	}
	if len(pub.published) != len(rows) {
		t.Fatalf("published %d rows, want %d", len(pub.published), len(rows))
	}
}

func TestBuildRowsNoPersistWhenDisabled(t *testing.T) {
	store := &storeStub{}
	pub := &publisherStub{}
	svc := newService(newRecorderStub())
	builder := NewTrainingBuilder(svc, store, pub, nil, nil)
	s := testBars(40)

	if _, err := builder.BuildRows(context.Background(), "AAPL", s, s[10].Date, s[30].Date, 0.5, false); err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(store.stored) != 0 || len(pub.published) != 0 {
		t.Fatal("persist disabled but sinks received rows")
	}
}

func TestBuildRowsInvalidSeries(t *testing.T) {
	svc := newService(newRecorderStub())
	builder := NewTrainingBuilder(svc, nil, nil, nil, nil)
	s := testBars(40)
	s[5].Close = -1

	if _, err := builder.BuildRows(context.Background(), "AAPL", s, s[0].Date, s[39].Date, 0.5, false); err == nil {
		t.Fatal("expected validation error")
	}
}
