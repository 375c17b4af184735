package printing

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ridoystarlord/invctl/prefs"
	"github.com/ridoystarlord/invctl/render"
	"github.com/ridoystarlord/invctl/schema"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the label service endpoint.
const DefaultBaseURL = "https://pricetagger.mardens.com/api/"

// Input is everything one label request is built from.
type Input struct {
	Record    schema.Record
	Columns   schema.ColumnSet
	Form      *schema.PrintForm
	Overrides prefs.PrintOverrides
	// Percent is a percentage-off variant, 0 for the plain price.
	Percent float64
}

// DiscountedPrice applies percent off to price and fixes it to cents.
func DiscountedPrice(price decimal.Decimal, percent float64) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(percent).Div(decimal.NewFromInt(100)))
	return price.Mul(factor).Round(2)
}

// Department picks the department: local override, then the form's explicit
// department, then the record's department column.
func Department(in Input) string {
	if d := strings.TrimSpace(in.Overrides.Department); d != "" {
		return d
	}
	if in.Form != nil && in.Form.Department > 0 {
		return strconv.Itoa(in.Form.Department)
	}
	if v, ok := in.Record.Tagged(in.Columns, schema.Department); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// BuildURL composes the label request for in. now feeds the cache-busting
// parameter.
func BuildURL(base string, in Input, now time.Time) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse print url %q: %w", base, err)
	}
	q := u.Query()

	if raw, ok := in.Record.Tagged(in.Columns, schema.Price); ok {
		if price, ok := render.ParseAmount(raw); ok {
			if in.Percent != 0 {
				price = DiscountedPrice(price, in.Percent)
			}
			q.Set("price", price.StringFixed(2))
		}
	}
	if raw, ok := in.Record.Tagged(in.Columns, schema.MardensPrice); ok {
		if mp, ok := render.ParseAmount(raw); ok {
			q.Set("mp", mp.StringFixed(2))
		}
	}

	year, color := in.Overrides.Year, in.Overrides.Color
	if in.Form != nil {
		if in.Form.Label != "" {
			q.Set("label", in.Form.Label)
		}
		if year == "" {
			year = in.Form.Year
		}
		if color == "" {
			color = in.Form.Color
		}
		q.Set("showPriceLabel", strconv.FormatBool(in.Form.ShowPriceLabel))
	}
	if year != "" {
		q.Set("year", year)
	}
	if color != "" {
		q.Set("color", color)
	}
	if dept := Department(in); dept != "" {
		q.Set("department", dept)
	}
	q.Set("v", strconv.FormatInt(now.UnixMilli(), 10))

	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Variant is one print action a form offers.
type Variant struct {
	Percent float64
	Label   string
}

// Variants lists the print actions of form: one per percentage, or a single
// plain one.
func Variants(form *schema.PrintForm) []Variant {
	if form == nil || len(form.Percentages) == 0 {
		return []Variant{{Label: "print"}}
	}
	out := make([]Variant, 0, len(form.Percentages))
	for _, p := range form.Percentages {
		out = append(out, Variant{Percent: p, Label: fmt.Sprintf("%s%% off", decimal.NewFromFloat(p).String())})
	}
	return out
}
