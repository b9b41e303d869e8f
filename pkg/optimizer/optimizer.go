package optimizer

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/lovetrip/lovetrip/pkg/budget"
	"github.com/lovetrip/lovetrip/pkg/stats"
)

// The savings pass never drains more than 30% of a category's unused slack
// or 20% of its planned amount in one run. Downstream expectations pin these
// constants, do not tune them casually.
const (
	maxSavingsShare = 0.30
	maxPlannedShare = 0.20
)

// Suggestion proposes lowering one category's planned amount.
// SuggestedPlanned is always CurrentPlanned - Reduction and never negative.
type Suggestion struct {
	Category         budget.Category
	CurrentPlanned   float64
	SuggestedPlanned float64
	Reduction        float64
	Reason           string
}

// Result is the outcome of one optimization run. OptimizedDistribution holds
// the resulting planned amount for every canonical category, suggested or not.
type Result struct {
	IsOverBudget          bool
	OverAmount            float64
	Suggestions           []Suggestion
	OptimizedDistribution map[budget.Category]float64
}

// Optimize proposes per-category reductions that close the gap between the
// summary's planned total and targetBudget. A nil targetBudget defaults to
// the planned total itself, which makes the required reduction zero: an
// over-budget plan without an explicit target yields no suggestions. That
// follows the shipped behavior and is pinned by tests; see the optimizer
// notes in DESIGN.md before changing it.
//
// Reductions are collected in three passes while a running remainder lasts:
// overspending categories first (largest overage first), then categories
// with unused slack (highest savings rate first, capped), then a one-shot
// proportional distribution across all planned spend.
func Optimize(summary stats.Summary, targetBudget *float64) Result {
	isOverBudget := summary.Remaining < 0
	overAmount := 0.0
	if isOverBudget {
		overAmount = -summary.Remaining
	}

	target := summary.TotalPlanned
	if targetBudget != nil {
		target = *targetBudget
	}
	reductionNeeded := summary.TotalPlanned - target

	result := Result{
		IsOverBudget:          isOverBudget,
		OverAmount:            overAmount,
		Suggestions:           []Suggestion{},
		OptimizedDistribution: map[budget.Category]float64{},
	}

	if reductionNeeded <= 0 {
		for _, c := range budget.Categories() {
			result.OptimizedDistribution[c] = summary.ByCategory[c].Planned
		}
		return result
	}

	plan := newReductionPlan(summary)
	remaining := reductionNeeded

	// Pass 1: cut categories that are already overspending, biggest overage
	// first. A cut that would push the planned amount below zero is rejected
	// outright rather than clamped.
	for _, c := range overspentCategories(summary) {
		if remaining <= 0 {
			break
		}
		totals := summary.ByCategory[c]
		over := totals.Actual - totals.Planned
		reduction := math.Min(over, remaining)
		if totals.Planned-reduction < 0 {
			continue
		}
		plan.add(c, reduction, fmt.Sprintf("현재 %s원 초과 지출 중입니다. %s원 절감이 필요합니다", won(over), won(reduction)))
		remaining -= reduction
	}

	// Pass 2: trim unused slack, highest savings rate first, within the
	// 30%/20% caps.
	for _, c := range slackCategories(summary) {
		if remaining <= 0 {
			break
		}
		totals := summary.ByCategory[c]
		savings := totals.Planned - totals.Actual
		additional := math.Min(maxSavingsShare*savings, maxPlannedShare*totals.Planned)
		additional = math.Min(additional, remaining)
		applied := plan.add(c, additional, fmt.Sprintf("여유 예산 %s원 중 %s원을 절감할 수 있습니다", won(savings), won(additional)))
		remaining -= applied
	}

	// Pass 3: distribute whatever is left across all planned spend in one
	// shot, proportionally to each category's share of the planned total.
	if remaining > 0 && summary.TotalPlanned > 0 {
		leftover := remaining
		for _, c := range budget.Categories() {
			planned := summary.ByCategory[c].Planned
			if planned <= 0 {
				continue
			}
			share := leftover * planned / summary.TotalPlanned
			applied := plan.add(c, share, fmt.Sprintf("전체 예산 비율에 따라 %s원 추가 절감을 제안합니다", won(share)))
			remaining -= applied
		}
	}

	result.Suggestions = plan.suggestions()
	for _, c := range budget.Categories() {
		planned := summary.ByCategory[c].Planned
		if s, ok := plan.byCategory[c]; ok {
			planned = s.SuggestedPlanned
		}
		result.OptimizedDistribution[c] = planned
	}
	return result
}

// reductionPlan accumulates suggestions, merging repeated reductions of the
// same category and keeping the cumulative reduction within the category's
// planned amount so SuggestedPlanned can never go negative.
type reductionPlan struct {
	summary    stats.Summary
	byCategory map[budget.Category]*Suggestion
	order      []budget.Category
}

func newReductionPlan(summary stats.Summary) *reductionPlan {
	return &reductionPlan{
		summary:    summary,
		byCategory: map[budget.Category]*Suggestion{},
	}
}

// add applies up to amount of reduction to the category and returns how much
// was actually applied.
func (p *reductionPlan) add(category budget.Category, amount float64, reason string) float64 {
	current := p.summary.ByCategory[category].Planned

	s := p.byCategory[category]
	if s == nil {
		s = &Suggestion{Category: category, CurrentPlanned: current, SuggestedPlanned: current}
		p.byCategory[category] = s
		p.order = append(p.order, category)
	}

	available := s.CurrentPlanned - s.Reduction
	applied := math.Min(amount, available)
	if applied <= 0 {
		return 0
	}

	s.Reduction += applied
	s.SuggestedPlanned = s.CurrentPlanned - s.Reduction
	if s.Reason == "" {
		s.Reason = reason
	} else {
		s.Reason += "; " + reason
	}
	return applied
}

func (p *reductionPlan) suggestions() []Suggestion {
	suggestions := make([]Suggestion, 0, len(p.order))
	for _, c := range p.order {
		suggestions = append(suggestions, *p.byCategory[c])
	}
	return suggestions
}

func overspentCategories(summary stats.Summary) []budget.Category {
	var categories []budget.Category
	for _, c := range budget.Categories() {
		totals := summary.ByCategory[c]
		if totals.Actual > totals.Planned {
			categories = append(categories, c)
		}
	}
	sort.SliceStable(categories, func(i, j int) bool {
		a := summary.ByCategory[categories[i]]
		b := summary.ByCategory[categories[j]]
		return a.Actual-a.Planned > b.Actual-b.Planned
	})
	return categories
}

func slackCategories(summary stats.Summary) []budget.Category {
	var categories []budget.Category
	for _, c := range budget.Categories() {
		totals := summary.ByCategory[c]
		if totals.Planned > totals.Actual {
			categories = append(categories, c)
		}
	}
	sort.SliceStable(categories, func(i, j int) bool {
		a := summary.ByCategory[categories[i]]
		b := summary.ByCategory[categories[j]]
		return (a.Planned-a.Actual)/a.Planned > (b.Planned-b.Actual)/b.Planned
	})
	return categories
}

func won(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', -1, 64)
}
