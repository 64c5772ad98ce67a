// Package heuristic contains the static position evaluator used at the
// leaves of the search tree.
package heuristic

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/abalone/board"
)

// Weights for the sub-heuristics. Material should dominate; the other terms
// break ties between positions of equal material.
type Weights struct {
	Material   float64
	Centrality float64
	Cohesion   float64
	// Alignment of zero leaves the term out entirely.
	Alignment float64
}

// DefaultWeights are the weights the agent plays with unless configured
// otherwise.
var DefaultWeights = Weights{
	Material:   10000,
	Centrality: 1,
	Cohesion:   1,
	Alignment:  1,
}

type weightedTerm struct {
	Term
	weight float64
}

// Evaluator scores a board for one side. Higher is better for that side,
// and Evaluate(b, c) == -Evaluate(b, c.Other()) for every board.
type Evaluator struct {
	terms []weightedTerm
}

func NewEvaluator(w Weights) *Evaluator {
	e := &Evaluator{terms: []weightedTerm{
		{MaterialTerm{}, w.Material},
		{CentralityTerm{}, w.Centrality},
		{CohesionTerm{}, w.Cohesion},
	}}
	if w.Alignment != 0 {
		e.terms = append(e.terms, weightedTerm{AlignmentTerm{}, w.Alignment})
	}
	return e
}

func (e *Evaluator) Evaluate(b *board.Board, side board.Color) float64 {
	return lo.SumBy(e.terms, func(t weightedTerm) float64 {
		return t.weight * t.Value(b, side)
	})
}

// TermValue is one line of a Breakdown.
type TermValue struct {
	Name     string
	Raw      float64
	Weight   float64
	Weighted float64
}

// Breakdown reports each term's raw and weighted contribution.
func (e *Evaluator) Breakdown(b *board.Board, side board.Color) []TermValue {
	return lo.Map(e.terms, func(t weightedTerm, _ int) TermValue {
		raw := t.Value(b, side)
		return TermValue{Name: t.Name(), Raw: raw, Weight: t.weight, Weighted: raw * t.weight}
	})
}

// BreakdownText renders a breakdown as a small table.
func BreakdownText(tvs []TermValue) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-12s %10s %10s %12s\n", "term", "raw", "weight", "weighted"))
	total := 0.0
	for _, tv := range tvs {
		sb.WriteString(fmt.Sprintf("%-12s %10.3f %10.1f %12.3f\n", tv.Name, tv.Raw, tv.Weight, tv.Weighted))
		total += tv.Weighted
	}
	sb.WriteString(fmt.Sprintf("%-12s %34.3f\n", "total", total))
	return sb.String()
}
