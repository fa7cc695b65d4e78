package aggregator

import (
	"errors"
	"fmt"

	"company-rollup-go/internal/types"
)

// ErrMissingGroupColumn is returned when the input header has no company column.
var ErrMissingGroupColumn = errors.New("group column missing from header")

// family is a passed/taken pair that yields one ratio.
type family struct {
	passed float64
	taken  float64
}

func (f *family) add(passed, taken float64) {
	f.passed += passed
	f.taken += taken
}

func (f family) ratio() types.Ratio {
	if f.taken > 0 {
		return types.Ratio{Value: round2(f.passed / f.taken), Valid: true}
	}
	return types.Ratio{}
}

type accumulator struct {
	count int

	audit      family
	presence   family
	reputation family
	marketing  family
	messaging  family

	verified      float64
	tracking      float64
	phoneNumber   float64
	websiteURL    float64
	reviewsHigh   float64
	highRatings   float64
	posting       float64
	multiplePosts float64
}

func (a *accumulator) add(r types.Record) {
	num := func(col string) float64 { return ParseNumber(r[col]) }

	a.count++
	a.audit.add(num(ColTotalPassed), num(ColTotalResults))
	a.presence.add(num(ColPresencePassed), num(ColPresenceTaken))
	a.reputation.add(num(ColReputationPassed), num(ColReputationTaken))
	a.marketing.add(num(ColMarketingPassed), num(ColMarketingTaken))
	a.messaging.add(num(ColMessagingPassed), num(ColMessagingTaken))
	a.verified += num(ColIsClaimed)
	a.tracking += num(ColHasUtmCodes)
	a.phoneNumber += num(ColHasPhoneNumber)
	a.websiteURL += num(ColHasWebsiteURL)
	a.reviewsHigh += num(ColHasReviewsHigh)
	a.highRatings += num(ColHasAverageRating)
	a.posting += num(ColHasPosts)
	a.multiplePosts += num(ColHasPostsMultiple)
}

func (a *accumulator) result(name string) types.CompanyRollup {
	count := float64(a.count)
	return types.CompanyRollup{
		CompanyName:           name,
		Count:                 a.count,
		AuditScore:            a.audit.ratio(),
		Presence:              a.presence.ratio(),
		Reputation:            a.reputation.ratio(),
		Marketing:             a.marketing.ratio(),
		Messaging:             a.messaging.ratio(),
		Verified:              a.verified,
		Tracking:              a.tracking,
		PhoneNumber:           a.phoneNumber,
		WebsiteURL:            a.websiteURL,
		LowReviewCount:        count - a.reviewsHigh,
		HighRatings:           a.highRatings,
		ListingsPosting:       a.posting,
		ListingsNotPosting:    count - a.posting,
		ListingsMultiplePosts: a.multiplePosts,
	}
}

// groups keeps accumulators in first-seen key order.
type groups struct {
	order []string
	byKey map[string]*accumulator
}

func (g *groups) get(key string) *accumulator {
	if acc, ok := g.byKey[key]; ok {
		return acc
	}
	acc := &accumulator{}
	g.byKey[key] = acc
	g.order = append(g.order, key)
	return acc
}

// Rollup groups records by company name and returns one row per company in
// the order each company first appears. Records without a company name are
// ignored. Unparsable numbers count as zero.
func Rollup(records []types.Record) []types.CompanyRollup {
	g := groups{byKey: make(map[string]*accumulator)}
	for _, r := range records {
		key := r[ColCompanyName]
		if key == "" {
			continue
		}
		g.get(key).add(r)
	}

	out := make([]types.CompanyRollup, 0, len(g.order))
	for _, key := range g.order {
		out = append(out, g.byKey[key].result(key))
	}
	return out
}

// RollupDataset checks that the header carries the company column, then
// rolls up its records.
func RollupDataset(ds types.Dataset) ([]types.CompanyRollup, error) {
	if !ds.HasColumn(ColCompanyName) {
		return nil, fmt.Errorf("%w: %q", ErrMissingGroupColumn, ColCompanyName)
	}
	return Rollup(ds.Records), nil
}
