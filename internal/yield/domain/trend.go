package domain

import (
	"fmt"
	"math"

	"github.com/sajithvengateri-svg/chefos/pkg/money"
)

// SuggestionCode tags an advisory finding. Suggestions are plain data;
// presenting or ignoring them is the caller's decision.
type SuggestionCode string

const (
	SuggestStandardizePortioning SuggestionCode = "standardize_portioning"
	SuggestTechniqueReview       SuggestionCode = "technique_review"
	SuggestScheduleTraining      SuggestionCode = "schedule_training"
	SuggestCoachPreparer         SuggestionCode = "coach_preparer"
)

type Suggestion struct {
	Code     SuggestionCode `json:"code"`
	Preparer string         `json:"preparer,omitempty"`
	Message  string         `json:"message"`
}

// TrendThresholds tunes the heuristics; defaults come from config.
type TrendThresholds struct {
	StdDev            float64
	AvgBelowTargetGap float64
	ConsecutiveBelow  int
	PreparerGap       float64
}

type TrendAnalysis struct {
	TestCount   int          `json:"test_count"`
	AvgYield    float64      `json:"avg_yield"`
	StdDev      float64      `json:"std_dev"`
	AvgTarget   *float64     `json:"avg_target,omitempty"`
	Suggestions []Suggestion `json:"suggestions"`
}

// AnalyzeTrend computes yield statistics over tests ordered by test date
// and emits advisory suggestions from fixed thresholds. Tests without a
// target only contribute to the average and spread.
func AnalyzeTrend(tests []YieldTest, th TrendThresholds) TrendAnalysis {
	out := TrendAnalysis{TestCount: len(tests), Suggestions: []Suggestion{}}
	if len(tests) == 0 {
		return out
	}

	var sum float64
	for _, t := range tests {
		sum += t.YieldPercent()
	}
	out.AvgYield = sum / float64(len(tests))

	var sq float64
	for _, t := range tests {
		d := t.YieldPercent() - out.AvgYield
		sq += d * d
	}
	out.StdDev = math.Sqrt(sq / float64(len(tests)))

	var targetSum float64
	var targetCount int
	for _, t := range tests {
		if t.TargetYieldPercent != nil {
			targetSum += *t.TargetYieldPercent
			targetCount++
		}
	}
	if targetCount > 0 {
		avg := targetSum / float64(targetCount)
		out.AvgTarget = &avg
	}

	if out.StdDev > th.StdDev {
		out.Suggestions = append(out.Suggestions, Suggestion{
			Code:    SuggestStandardizePortioning,
			Message: fmt.Sprintf("yield varies by %.1f points across tests; standardize portioning and trimming", out.StdDev),
		})
	}

	if out.AvgTarget != nil && out.AvgYield < *out.AvgTarget-th.AvgBelowTargetGap {
		out.Suggestions = append(out.Suggestions, Suggestion{
			Code:    SuggestTechniqueReview,
			Message: fmt.Sprintf("average yield %.1f%% sits below the %.1f%% target; review prep technique", out.AvgYield, *out.AvgTarget),
		})
	}

	if streak := longestTrailingBelowTarget(tests); streak >= th.ConsecutiveBelow && th.ConsecutiveBelow > 0 {
		out.Suggestions = append(out.Suggestions, Suggestion{
			Code:    SuggestScheduleTraining,
			Message: fmt.Sprintf("%d consecutive tests below target; schedule a training session", streak),
		})
	}

	out.Suggestions = append(out.Suggestions, preparerSuggestions(tests, th)...)

	out.AvgYield = money.RoundPercent(out.AvgYield)
	out.StdDev = money.RoundPercent(out.StdDev)
	return out
}

func longestTrailingBelowTarget(tests []YieldTest) int {
	streak := 0
	for i := len(tests) - 1; i >= 0; i-- {
		t := tests[i]
		if t.TargetYieldPercent == nil || t.YieldPercent() >= *t.TargetYieldPercent {
			break
		}
		streak++
	}
	return streak
}

func preparerSuggestions(tests []YieldTest, th TrendThresholds) []Suggestion {
	type acc struct {
		yieldSum  float64
		targetSum float64
		count     int
	}
	byPreparer := map[string]*acc{}
	order := []string{}
	for _, t := range tests {
		if t.Preparer == "" || t.TargetYieldPercent == nil {
			continue
		}
		a, ok := byPreparer[t.Preparer]
		if !ok {
			a = &acc{}
			byPreparer[t.Preparer] = a
			order = append(order, t.Preparer)
		}
		a.yieldSum += t.YieldPercent()
		a.targetSum += *t.TargetYieldPercent
		a.count++
	}

	var out []Suggestion
	for _, name := range order {
		a := byPreparer[name]
		mean := a.yieldSum / float64(a.count)
		target := a.targetSum / float64(a.count)
		if mean < target-th.PreparerGap {
			out = append(out, Suggestion{
				Code:     SuggestCoachPreparer,
				Preparer: name,
				Message:  fmt.Sprintf("%s averages %.1f%% against a %.1f%% target; pair them with a senior prep cook", name, mean, target),
			})
		}
	}
	return out
}
