package domain

import "fmt"

type RecommendationPriority string

const (
	RecommendationHigh   RecommendationPriority = "high"
	RecommendationMedium RecommendationPriority = "medium"
	RecommendationLow    RecommendationPriority = "low"
)

type Recommendation struct {
	Type        string                 `json:"type"`
	Priority    RecommendationPriority `json:"priority"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Actions     []string               `json:"actions"`
}

// RecommendationInput is the aggregate view the rules read. Rates and shares
// are unrounded; summaries round them for display only.
type RecommendationInput struct {
	ReflectionFrequencyRate float64
	ProblemCount            int
	TryCount                int
	AverageProductivity     *float64
	LongSessionShare        float64
	WorkSessionCount        int
	AverageEmotion          *float64
	ItemCompletionRate      float64
	ItemsCount              int
}

func RecommendationInputFrom(summary PeriodSummary, work WorkSummary, productivity *float64) RecommendationInput {
	return RecommendationInput{
		ReflectionFrequencyRate: Percent(summary.ActiveDays, summary.Days),
		ProblemCount:            summary.CategoryCounts[CategoryProblem],
		TryCount:                summary.CategoryCounts[CategoryTry],
		AverageProductivity:     productivity,
		LongSessionShare:        Share(work.LongSessionCount, work.Count),
		WorkSessionCount:        work.Count,
		AverageEmotion:          summary.AverageEmotion,
		ItemCompletionRate:      Percent(summary.CompletedItems, summary.ItemsCount),
		ItemsCount:              summary.ItemsCount,
	}
}

// Rule is one recommendation heuristic. Rules fire independently and the
// output keeps rule order.
type Rule struct {
	Name  string
	Match func(RecommendationInput) bool
	Build func(RecommendationInput) Recommendation
}

var DefaultRules = []Rule{
	{
		Name:  "consistency",
		Match: func(in RecommendationInput) bool { return in.ReflectionFrequencyRate < ReflectionFrequencyFloor },
		Build: func(in RecommendationInput) Recommendation {
			return Recommendation{
				Type:        "consistency",
				Priority:    RecommendationHigh,
				Title:       "Reflect more regularly",
				Description: fmt.Sprintf("You reflected on %.0f%% of the days in this period.", in.ReflectionFrequencyRate),
				Actions:     []string{"Schedule a short daily retrospective", "Mark the day even when there is little to record"},
			}
		},
	},
	{
		Name:  "action_planning",
		Match: func(in RecommendationInput) bool { return in.ProblemCount > ProblemToTryRatio*in.TryCount },
		Build: func(in RecommendationInput) Recommendation {
			return Recommendation{
				Type:        "action_planning",
				Priority:    RecommendationMedium,
				Title:       "Turn problems into experiments",
				Description: fmt.Sprintf("%d problems were recorded against %d try items.", in.ProblemCount, in.TryCount),
				Actions:     []string{"Write one try item for every open problem", "Pick one experiment to run this week"},
			}
		},
	},
	{
		Name: "productivity",
		Match: func(in RecommendationInput) bool {
			return in.AverageProductivity != nil && *in.AverageProductivity < ProductivityFloor
		},
		Build: func(in RecommendationInput) Recommendation {
			return Recommendation{
				Type:        "productivity",
				Priority:    RecommendationMedium,
				Title:       "Protect focused work",
				Description: fmt.Sprintf("Average productivity is %.1f out of 5.", *in.AverageProductivity),
				Actions:     []string{"Block time for deep work", "Reduce context switches between tasks"},
			}
		},
	},
	{
		Name: "work_life_balance",
		Match: func(in RecommendationInput) bool {
			return in.WorkSessionCount > 0 && in.LongSessionShare > LongSessionShareCeiling
		},
		Build: func(in RecommendationInput) Recommendation {
			return Recommendation{
				Type:        "work_life_balance",
				Priority:    RecommendationHigh,
				Title:       "Shorten long work sessions",
				Description: fmt.Sprintf("%.0f%% of work sessions ran longer than four hours.", in.LongSessionShare*100),
				Actions:     []string{"Take a break every 90 minutes", "Split long tasks into smaller sessions"},
			}
		},
	},
	{
		Name: "wellbeing",
		Match: func(in RecommendationInput) bool {
			return in.AverageEmotion != nil && *in.AverageEmotion < EmotionFloor
		},
		Build: func(in RecommendationInput) Recommendation {
			return Recommendation{
				Type:        "wellbeing",
				Priority:    RecommendationMedium,
				Title:       "Look after how the work feels",
				Description: fmt.Sprintf("Average emotion score is %.1f out of 5.", *in.AverageEmotion),
				Actions:     []string{"Note what drained energy in each session", "Keep one thing that went well every day"},
			}
		},
	},
	{
		Name: "follow_through",
		Match: func(in RecommendationInput) bool {
			return in.ItemsCount >= MinItemsForCompletion && in.ItemCompletionRate < ItemCompletionFloor
		},
		Build: func(in RecommendationInput) Recommendation {
			return Recommendation{
				Type:        "follow_through",
				Priority:    RecommendationLow,
				Title:       "Close the loop on items",
				Description: fmt.Sprintf("Only %.0f%% of %d items were completed.", in.ItemCompletionRate, in.ItemsCount),
				Actions:     []string{"Review open items at the start of each session", "Drop items that no longer matter"},
			}
		},
	},
}

// Recommend evaluates rules in order and returns a recommendation for every
// rule that matches.
func Recommend(in RecommendationInput, rules []Rule) []Recommendation {
	out := make([]Recommendation, 0, len(rules))
	for _, rule := range rules {
		if rule.Match(in) {
			out = append(out, rule.Build(in))
		}
	}
	return out
}
