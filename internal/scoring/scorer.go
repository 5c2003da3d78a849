// Package scoring runs the weighted audit checks and places the resulting
// score against industry benchmarks.
package scoring

import (
	"log/slog"
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bahjat/site-audit-tool/internal/model"
)

// errorMessage is reported for a check that panicked.
const errorMessage = "Error"

// Result is the scored battery.
type Result struct {
	Score        int
	Grade        string
	PassedWeight int
	TotalWeight  int
	Checks       []model.CheckResult
	ByCategory   map[string][]model.CheckResult
}

// Scorer evaluates a fixed, ordered battery of checks.
type Scorer struct {
	checks []Check
	logger *slog.Logger
}

// NewScorer returns a Scorer over checks, or over the default battery when
// none are given.
func NewScorer(logger *slog.Logger, checks ...Check) *Scorer {
	if len(checks) == 0 {
		checks = DefaultChecks()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{checks: checks, logger: logger}
}

// TotalWeight is the sum of all check weights.
func (s *Scorer) TotalWeight() int {
	var total int
	for _, c := range s.checks {
		total += c.Weight
	}
	return total
}

// Score runs every check once, in order, and computes
// round(100 * passedWeight / totalWeight).
func (s *Scorer) Score(in Input) Result {
	// A document that fails to parse leaves doc nil; the structural checks
	// then fail through the panic path below.
	if in.doc == nil {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(in.HTML)); err == nil {
			in.doc = doc
		}
	}

	res := Result{
		Checks:     make([]model.CheckResult, 0, len(s.checks)),
		ByCategory: make(map[string][]model.CheckResult),
	}

	for _, c := range s.checks {
		out := s.run(c, &in)
		cr := model.CheckResult{
			Name:     c.Name,
			Category: c.Category,
			Weight:   c.Weight,
			Passed:   out.Passed,
			Message:  out.Message,
		}

		res.TotalWeight += c.Weight
		if cr.Passed {
			res.PassedWeight += c.Weight
		}
		res.Checks = append(res.Checks, cr)
		res.ByCategory[c.Category] = append(res.ByCategory[c.Category], cr)
	}

	if res.TotalWeight > 0 {
		res.Score = int(math.Round(100 * float64(res.PassedWeight) / float64(res.TotalWeight)))
	}
	res.Grade = Grade(res.Score)
	return res
}

func (s *Scorer) run(c Check, in *Input) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("check panicked", "check", c.Name, "panic", r)
			out = Outcome{Message: errorMessage}
		}
	}()
	return c.Eval(in)
}

// Grade maps a score to a letter grade.
func Grade(score int) string {
	switch {
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 40:
		return "D"
	}
	return "F"
}
