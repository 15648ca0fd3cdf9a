package domain

// Heuristic constants of the analytics engine. They are part of the behavior,
// not tuning knobs, and every call site refers to these names.
const (
	// DefaultScore substitutes a missing emotion or impact score.
	DefaultScore = 3.0

	// TrendDelta is the minimum half-over-half change classified as up or down.
	TrendDelta = 0.3

	// HighImpactThreshold splits success patterns into high and medium.
	HighImpactThreshold = 3.5

	// RecurringMinOccurrences is the minimum support for a recurring theme.
	RecurringMinOccurrences = 3

	// StreakLookbackDays bounds the backward walk of the streak calculator.
	StreakLookbackDays = 30

	// MaxBuckets rejects windows that would produce more buckets than this.
	MaxBuckets = 2000

	// MaxTagsPerItem caps the tags of one item considered for co-occurrence.
	MaxTagsPerItem = 10

	// TopTagPairs is the number of co-occurring pairs reported.
	TopTagPairs = 5

	// LongWorkSessionMinutes marks a work log as a long session.
	LongWorkSessionMinutes = 240

	ReflectionFrequencyFloor = 50.0
	ProblemToTryRatio        = 2
	ProductivityFloor        = 3.0
	LongSessionShareCeiling  = 0.30
	EmotionFloor             = 2.5
	ItemCompletionFloor      = 50.0
	MinItemsForCompletion    = 5
)
