package search

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50

	// MaxTextParamBytes caps query, category and service after trimming.
	MaxTextParamBytes = 256
)

// SearchParams are the raw query-string parameters of a search request.
type SearchParams struct {
	Query    string `form:"query" json:"query,omitempty"`
	Location string `form:"location" json:"location,omitempty"`
	Category string `form:"category" json:"category,omitempty"`
	Rating   string `form:"rating" json:"rating,omitempty"`
	Service  string `form:"service" json:"service,omitempty"`
	Page     string `form:"page" json:"page,omitempty"`
	Limit    string `form:"limit" json:"limit,omitempty"`
}

// Point is a parsed "<longitude>,<latitude>" pair.
type Point struct {
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
}

// SearchFilters is the validated, typed form of SearchParams.
type SearchFilters struct {
	Query    string   `json:"query"`
	Location *Point   `json:"location"`
	Category string   `json:"category"`
	Rating   *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Service  string   `json:"service"`
	Page     int      `json:"page" validate:"gte=1"`
	Limit    int      `json:"limit" validate:"gte=1,lte=50"`
}

var paramOrder = map[string]int{
	"query":    0,
	"location": 1,
	"category": 2,
	"rating":   3,
	"service":  4,
	"page":     5,
	"limit":    6,
}

var locationPattern = regexp.MustCompile(`^([-+]?\d+(?:\.\d+)?)\s*,\s*([-+]?\d+(?:\.\d+)?)$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Normalize validates and coerces raw parameters. On failure it returns a
// *ValidationError naming every rejected parameter, not just the first.
func Normalize(params SearchParams) (SearchFilters, error) {
	verr := &ValidationError{}
	filters := SearchFilters{
		Query:    strings.TrimSpace(params.Query),
		Category: strings.TrimSpace(params.Category),
		Service:  strings.TrimSpace(params.Service),
		Page:     DefaultPage,
		Limit:    DefaultLimit,
	}

	checkText(verr, "query", filters.Query)
	checkText(verr, "category", filters.Category)
	checkText(verr, "service", filters.Service)

	if raw := strings.TrimSpace(params.Location); raw != "" {
		point, err := parseLocation(raw)
		if err != nil {
			verr.add("location", `location must be "<longitude>,<latitude>" using decimal degrees`)
		} else {
			filters.Location = &point
		}
	}

	if raw := strings.TrimSpace(params.Rating); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(rating) || math.IsInf(rating, 0) {
			verr.add("rating", "rating must be a number between 0 and 5")
		} else {
			filters.Rating = &rating
		}
	}

	if raw := strings.TrimSpace(params.Page); raw != "" {
		page, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			verr.add("page", fieldMessages["page"])
		} else {
			filters.Page = int(page)
		}
	}

	if raw := strings.TrimSpace(params.Limit); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			verr.add("limit", fieldMessages["limit"])
		} else {
			filters.Limit = int(limit)
		}
	}

	if err := validate.Struct(filters); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return SearchFilters{}, fmt.Errorf("failed to validate search filters: %w", err)
		}
		for _, fe := range fieldErrs {
			verr.add(paramName(fe), fieldMessages[fe.Field()])
		}
	}

	if len(verr.Fields) > 0 {
		verr.sortByParam()
		return SearchFilters{}, verr
	}
	return filters, nil
}

func checkText(verr *ValidationError, param, value string) {
	switch {
	case !utf8.ValidString(value):
		verr.add(param, param+" must be valid UTF-8 text")
	case len(value) > MaxTextParamBytes:
		verr.add(param, fmt.Sprintf("%s must be at most %d bytes", param, MaxTextParamBytes))
	}
}

var fieldMessages = map[string]string{
	"rating":    "rating must be a number between 0 and 5",
	"page":      "page must be an integer greater than or equal to 1",
	"limit":     "limit must be an integer between 1 and 50",
	"longitude": "location longitude must be between -180 and 180",
	"latitude":  "location latitude must be between -90 and 90",
}

// paramName maps a validator error back to the request parameter it came
// from; nested point fields belong to "location".
func paramName(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) >= 2 {
		return parts[1]
	}
	return fe.Field()
}

func parseLocation(raw string) (Point, error) {
	m := locationPattern.FindStringSubmatch(raw)
	if m == nil {
		return Point{}, fmt.Errorf("malformed location %q", raw)
	}
	lon, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Point{}, err
	}
	lat, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Point{}, err
	}
	return Point{Longitude: lon, Latitude: lat}, nil
}
