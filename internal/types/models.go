package types

import (
	"strconv"
)

// Record is one input row keyed by header name.
type Record map[string]string

// Dataset is a parsed input file. Records keep file order.
type Dataset struct {
	Header  []string `json:"header"`
	Records []Record `json:"-"`
}

// HasColumn reports whether name appears in the header.
func (d Dataset) HasColumn(name string) bool {
	for _, h := range d.Header {
		if h == name {
			return true
		}
	}
	return false
}

// Ratio is a passed/taken ratio already rounded to two decimals.
// The zero value means the taken sum was zero and serializes as "0".
type Ratio struct {
	Value float64
	Valid bool
}

func (r Ratio) String() string {
	if !r.Valid {
		return "0"
	}
	return strconv.FormatFloat(r.Value, 'f', 2, 64)
}

// Float returns the numeric cell value, 0 when undefined.
func (r Ratio) Float() float64 {
	if !r.Valid {
		return 0
	}
	return r.Value
}

// MarshalJSON emits 0 for an undefined ratio and a two-decimal number otherwise.
func (r Ratio) MarshalJSON() ([]byte, error) {
	return []byte(r.String()), nil
}

// CompanyRollup is one output row: all input rows sharing a company name.
type CompanyRollup struct {
	CompanyName string `json:"company_name"`
	Count       int    `json:"count"`

	AuditScore Ratio `json:"audit_score"`
	Presence   Ratio `json:"presence"`
	Reputation Ratio `json:"reputation"`
	Marketing  Ratio `json:"marketing"`
	Messaging  Ratio `json:"messaging"`

	Verified    float64 `json:"verified"`
	Tracking    float64 `json:"tracking"`
	PhoneNumber float64 `json:"phone_number"`
	WebsiteURL  float64 `json:"website_url"`

	LowReviewCount float64 `json:"low_review_count"`
	HighRatings    float64 `json:"high_ratings"`

	ListingsPosting       float64 `json:"listings_posting"`
	ListingsNotPosting    float64 `json:"listings_not_posting"`
	ListingsMultiplePosts float64 `json:"listings_multiple_posts"`
}

// OutputHeader is the export column order. The numbered columns repeat a
// canonical field for the report layout.
var OutputHeader = []string{
	"Company Name",
	"Count",
	"Audit Score",
	"Presence",
	"Reputation",
	"Marketing",
	"Messaging",
	"Company Name 1",
	"Count 1",
	"Presence 1",
	"Verified",
	"Tracking",
	"Phone Number",
	"Website URL",
	"Company Name 2",
	"Count 2",
	"Reputation 2",
	"Low Review Count",
	"High Ratings",
	"Company Name 3",
	"Count 3",
	"Marketing 2",
	"Listings Posting",
	"Listings Not Posting",
	"Listings with Multiple Posts",
}

// Cells returns the row in OutputHeader order. Repeated columns are copies
// of the canonical fields.
func (c CompanyRollup) Cells() []any {
	return []any{
		c.CompanyName,
		c.Count,
		c.AuditScore,
		c.Presence,
		c.Reputation,
		c.Marketing,
		c.Messaging,
		c.CompanyName,
		c.Count,
		c.Presence,
		c.Verified,
		c.Tracking,
		c.PhoneNumber,
		c.WebsiteURL,
		c.CompanyName,
		c.Count,
		c.Reputation,
		c.LowReviewCount,
		c.HighRatings,
		c.CompanyName,
		c.Count,
		c.Marketing,
		c.ListingsPosting,
		c.ListingsNotPosting,
		c.ListingsMultiplePosts,
	}
}

// Strings returns the row as text in OutputHeader order.
func (c CompanyRollup) Strings() []string {
	cells := c.Cells()
	out := make([]string, len(cells))
	for i, v := range cells {
		switch x := v.(type) {
		case string:
			out[i] = x
		case int:
			out[i] = strconv.Itoa(x)
		case float64:
			out[i] = strconv.FormatFloat(x, 'f', -1, 64)
		case Ratio:
			out[i] = x.String()
		}
	}
	return out
}
