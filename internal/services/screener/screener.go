// Package screener evaluates boolean predicates over a feature vector. Rules
// compare a named feature against a constant or against another feature; a
// null operand fails the rule rather than erroring, so screening over a short
// history simply matches nothing.
package screener

import "QuantCore/internal/domain/models"

// Evaluate runs every rule against the vector and reports per-rule outcomes
// plus the all-matched verdict. Rules referencing unknown fields count as
// missing, not as errors.
func Evaluate(fv *models.FeatureVector, rules []models.Rule) *models.ScreenReport {
	report := &models.ScreenReport{
		Symbol:     fv.Symbol,
		BasisDate:  fv.BasisDate,
		AllMatched: len(rules) > 0,
		Results:    make([]models.RuleResult, 0, len(rules)),
	}
	for _, rule := range rules {
		res := evaluateRule(fv, rule)
		if !res.Matched {
			report.AllMatched = false
		}
		report.Results = append(report.Results, res)
	}
	return report
}

func evaluateRule(fv *models.FeatureVector, rule models.Rule) models.RuleResult {
	left, ok := fv.Get(rule.Field)
	if !ok {
		return models.RuleResult{Rule: rule, Missing: true}
	}

	var right float64
	switch {
	case rule.Compare != "":
		r, ok := fv.Get(rule.Compare)
		if !ok {
			return models.RuleResult{Rule: rule, Missing: true}
		}
		right = r
	case rule.Value != nil:
		right = *rule.Value
	default:
		// Rule carries neither operand; treat as missing.
		return models.RuleResult{Rule: rule, Missing: true}
	}

	return models.RuleResult{Rule: rule, Matched: compare(left, rule.Op, right)}
}

func compare(left float64, op string, right float64) bool {
	switch op {
	case "gt":
		return left > right
	case "gte":
		return left >= right
	case "lt":
		return left < right
	case "lte":
		return left <= right
	case "eq":
		return left == right
	default:
		return false
	}
}
