package models

import (
	"fmt"
	"strings"
)

// Criterion selects the weighting strategy for route ranking.
type Criterion string

const (
	CriterionCost          Criterion = "cost"
	CriterionTime          Criterion = "time"
	CriterionDistance      Criterion = "distance"
	CriterionAccessibility Criterion = "accessibility"
)

// ParseCriterion maps a request string onto a Criterion.
func ParseCriterion(s string) (Criterion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cost":
		return CriterionCost, nil
	case "time":
		return CriterionTime, nil
	case "distance":
		return CriterionDistance, nil
	case "accessibility":
		return CriterionAccessibility, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCriterion, s)
	}
}
