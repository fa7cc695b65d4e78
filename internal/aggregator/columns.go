package aggregator

// Input column names. Matching is exact and case-sensitive.
const (
	ColCompanyName = "Associated Company Name"

	ColTotalPassed  = "Total Passed"
	ColTotalResults = "Total Results"

	ColPresencePassed = "Presence Tests Passed"
	ColPresenceTaken  = "Presence Tests Taken"

	ColReputationPassed = "Reputation Tests Passed"
	ColReputationTaken  = "Reputation Total Tests Taken"

	ColMarketingPassed = "Marketing Tests Passed"
	ColMarketingTaken  = "Marketing Total Tests Taken"

	ColMessagingPassed = "Messaging Tests Passed"
	ColMessagingTaken  = "Messaging Tests Taken"

	ColIsClaimed        = "Is Claimed"
	ColHasUtmCodes      = "Has Website Utm Codes"
	ColHasPhoneNumber   = "Has Phone Number"
	ColHasWebsiteURL    = "Has Website Url"
	ColHasReviewsHigh   = "Has Reviews High Total"
	ColHasAverageRating = "Has Reviews Average Rating"
	ColHasPosts         = "Has Posts"
	ColHasPostsMultiple = "Has Posts Multiple"
)

// MetricColumns lists every numeric column the rollup reads.
var MetricColumns = []string{
	ColTotalPassed,
	ColTotalResults,
	ColPresencePassed,
	ColPresenceTaken,
	ColReputationPassed,
	ColReputationTaken,
	ColMarketingPassed,
	ColMarketingTaken,
	ColMessagingPassed,
	ColMessagingTaken,
	ColIsClaimed,
	ColHasUtmCodes,
	ColHasPhoneNumber,
	ColHasWebsiteURL,
	ColHasReviewsHigh,
	ColHasAverageRating,
	ColHasPosts,
	ColHasPostsMultiple,
}
