package providerRepo

import (
	"regexp"
	"strings"

	"providerhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// MaxSearchDistanceMeters is the hard radius of the spatial search path.
const MaxSearchDistanceMeters = 10000.0

// Criteria is the compiled predicate set shared by both execution paths.
// All populated predicates must hold (AND). Location is not part of it.
type Criteria struct {
	// Terms are lower-cased query words; a record matches when any of them
	// occurs in its business name, description or one of its service names.
	Terms     []string
	Category  string   // exact match
	MinRating *float64 // inclusive lower bound
	Service   string   // case-insensitive substring of any service name
}

// IsEmpty reports whether the criteria match every record.
func (c Criteria) IsEmpty() bool {
	return len(c.Terms) == 0 && c.Category == "" && c.MinRating == nil && c.Service == ""
}

func (c Criteria) textPattern() string {
	if len(c.Terms) == 0 {
		return ""
	}
	quoted := make([]string, len(c.Terms))
	for i, t := range c.Terms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return strings.Join(quoted, "|")
}

// Filter renders the criteria as a MongoDB query document. It is valid both
// as a $match stage and as the query of a $geoNear stage.
func (c Criteria) Filter() bson.D {
	filter := bson.D{}
	if pattern := c.textPattern(); pattern != "" {
		re := bson.M{"$regex": pattern, "$options": "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "businessName", Value: re}},
			bson.D{{Key: "description", Value: re}},
			bson.D{{Key: "services.name", Value: re}},
		}})
	}
	if c.Category != "" {
		filter = append(filter, bson.E{Key: "category", Value: c.Category})
	}
	if c.MinRating != nil {
		filter = append(filter, bson.E{Key: "rating", Value: bson.M{"$gte": *c.MinRating}})
	}
	if c.Service != "" {
		filter = append(filter, bson.E{Key: "services.name", Value: bson.M{
			"$regex":   regexp.QuoteMeta(c.Service),
			"$options": "i",
		}})
	}
	return filter
}

// Matcher compiles the criteria into an in-process predicate with the same
// semantics as Filter.
func (c Criteria) Matcher() func(models.ProviderRecord) bool {
	var text, service *regexp.Regexp
	if pattern := c.textPattern(); pattern != "" {
		text = regexp.MustCompile("(?i)" + pattern)
	}
	if c.Service != "" {
		service = regexp.MustCompile("(?i)" + regexp.QuoteMeta(c.Service))
	}

	return func(p models.ProviderRecord) bool {
		if text != nil && !text.MatchString(p.BusinessName) && !text.MatchString(p.Description) && !anyServiceName(p.Services, text) {
			return false
		}
		if c.Category != "" && p.Category != c.Category {
			return false
		}
		if c.MinRating != nil && p.Rating < *c.MinRating {
			return false
		}
		if service != nil && !anyServiceName(p.Services, service) {
			return false
		}
		return true
	}
}

// Matches evaluates the criteria against a single record.
func (c Criteria) Matches(p models.ProviderRecord) bool {
	return c.Matcher()(p)
}

func anyServiceName(services []models.Service, re *regexp.Regexp) bool {
	for _, s := range services {
		if re.MatchString(s.Name) {
			return true
		}
	}
	return false
}
