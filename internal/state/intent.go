package state

// Intent identifies the functional mode a user has selected.
type Intent string

const (
	// IntentNone indicates that no conversation flow is in progress.
	IntentNone Intent = "none"
	// IntentSpecQuery indicates that the user is querying device specifications.
	IntentSpecQuery Intent = "spec_query"
	// IntentPriceQuery indicates that the user is querying device prices.
	IntentPriceQuery Intent = "price_query"
	// IntentCompare indicates that the user is comparing two devices.
	IntentCompare Intent = "compare"
	// IntentRecommendType is the transient first step of the recommend flow,
	// waiting for the device type. It always advances to IntentRecommend on the
	// next input and is never dispatched to a handler directly.
	IntentRecommendType Intent = "recommend_type"
	// IntentRecommend indicates that the user is entering requirements and budget.
	IntentRecommend Intent = "recommend"
	// IntentRanking indicates that the user is querying popularity rankings.
	IntentRanking Intent = "ranking"
	// IntentReview indicates that the user is querying product reviews.
	IntentReview Intent = "review"
)

// Intents lists every intent known to the bot, IntentNone included.
func Intents() []Intent {
	return []Intent{
		IntentNone,
		IntentSpecQuery,
		IntentPriceQuery,
		IntentCompare,
		IntentRecommendType,
		IntentRecommend,
		IntentRanking,
		IntentReview,
	}
}
