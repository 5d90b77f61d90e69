package screener

import (
	"testing"

	"QuantCore/internal/domain/models"
)

func fv(fields map[string]*float64) *models.FeatureVector {
	return &models.FeatureVector{
		Symbol:    "TEST",
		BasisDate: "2024-06-03",
		Features:  fields,
	}
}

func ptr(v float64) *float64 { return &v }

func TestEvaluateConstantRules(t *testing.T) {
	vector := fv(map[string]*float64{
		"rsi":   ptr(28),
		"close": ptr(101.5),
	})
	report := Evaluate(vector, []models.Rule{
		{Field: "rsi", Op: "lt", Value: ptr(30)},
		{Field: "close", Op: "gte", Value: ptr(100)},
	})
	if !report.AllMatched {
		t.Fatal("expected all rules to match")
	}
	for i, r := range report.Results {
		if !r.Matched || r.Missing {
			t.Fatalf("rule %d: matched=%v missing=%v", i, r.Matched, r.Missing)
		}
	}
}

func TestEvaluateFieldVsField(t *testing.T) {
	vector := fv(map[string]*float64{
		"close": ptr(105),
		"sma20": ptr(100),
	})
	report := Evaluate(vector, []models.Rule{
		{Field: "close", Op: "gt", Compare: "sma20"},
	})
	if !report.AllMatched {
		t.Fatal("close > sma20 should match")
	}
}

func TestEvaluateNullOperandNeverMatches(t *testing.T) {
	vector := fv(map[string]*float64{
		"rsi":    ptr(55),
		"sma200": nil,
	})
	report := Evaluate(vector, []models.Rule{
		{Field: "sma200", Op: "gt", Value: ptr(0)},
	})
	if report.AllMatched {
		t.Fatal("null operand must fail the screen")
	}
	if !report.Results[0].Missing {
		t.Fatal("null operand should be reported missing, not false")
	}

	report = Evaluate(vector, []models.Rule{
		{Field: "rsi", Op: "gt", Compare: "sma200"},
	})
	if !report.Results[0].Missing {
		t.Fatal("null comparison operand should be missing")
	}
}

func TestEvaluateUnknownField(t *testing.T) {
	vector := fv(map[string]*float64{"rsi": ptr(55)})
	report := Evaluate(vector, []models.Rule{
		{Field: "nope", Op: "gt", Value: ptr(0)},
	})
	if !report.Results[0].Missing || report.AllMatched {
		t.Fatal("unknown field should be missing and fail the screen")
	}
}

func TestEvaluateNoOperand(t *testing.T) {
	vector := fv(map[string]*float64{"rsi": ptr(55)})
	report := Evaluate(vector, []models.Rule{{Field: "rsi", Op: "gt"}})
	if !report.Results[0].Missing {
		t.Fatal("rule without operand should be missing")
	}
}

func TestEvaluateEmptyRules(t *testing.T) {
	report := Evaluate(fv(nil), nil)
	if report.AllMatched {
		t.Fatal("empty rule set should not claim a match")
	}
	if len(report.Results) != 0 {
		t.Fatalf("expected no results, got %d", len(report.Results))
	}
}

func TestEvaluateOperators(t *testing.T) {
	vector := fv(map[string]*float64{"x": ptr(10)})
	cases := []struct {
		op    string
		value float64
		want  bool
	}{
		{"gt", 9, true},
		{"gt", 10, false},
		{"gte", 10, true},
		{"lt", 11, true},
		{"lte", 10, true},
		{"eq", 10, true},
		{"eq", 9, false},
		{"bogus", 10, false},
	}
	for _, tc := range cases {
		report := Evaluate(vector, []models.Rule{{Field: "x", Op: tc.op, Value: ptr(tc.value)}})
		if got := report.Results[0].Matched; got != tc.want {
			t.Fatalf("op %s value %v: matched=%v, want %v", tc.op, tc.value, got, tc.want)
		}
	}
}
