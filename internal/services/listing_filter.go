package services

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mertcaneren0/arkyatirim/internal/models"
)

// ListingFilter is an arbitrary subset of independent filter dimensions.
// A nil/empty dimension imposes no constraint; present dimensions compose
// conjunctively.
type ListingFilter struct {
	Category     *models.ListingCategory
	City         *string
	District     *string
	MinPrice     *float64
	MaxPrice     *float64
	MinArea      *float64
	MaxArea      *float64
	FeatureFlags []string // every listed key must be true in the stored features
}

// Feature keys travel straight into field paths, so restrict them to plain
// identifiers. Anything else is dropped.
var featureKeyPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*$`)

// ParseListingFilter builds a ListingFilter from request query parameters.
// The read path is permissive: unknown keys are ignored, empty values mean
// "no constraint", and numeric values that fail to parse are treated as
// absent rather than causing a hard failure.
func ParseListingFilter(values url.Values) ListingFilter {
	var f ListingFilter

	if v := strings.TrimSpace(values.Get("type")); v != "" {
		cat := models.ListingCategory(v)
		f.Category = &cat
	}
	if v := strings.TrimSpace(values.Get("city")); v != "" {
		f.City = &v
	}
	if v := strings.TrimSpace(values.Get("district")); v != "" {
		f.District = &v
	}

	f.MinPrice = parseOptionalFloat(values.Get("minPrice"))
	f.MaxPrice = parseOptionalFloat(values.Get("maxPrice"))
	f.MinArea = parseOptionalFloat(values.Get("minArea"))
	f.MaxArea = parseOptionalFloat(values.Get("maxArea"))

	if raw := values.Get("features"); raw != "" {
		for _, key := range strings.Split(raw, ",") {
			key = strings.TrimSpace(key)
			if key != "" && featureKeyPattern.MatchString(key) {
				f.FeatureFlags = append(f.FeatureFlags, key)
			}
		}
	}

	return f
}

func parseOptionalFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// Malformed client input never fails the read path
		return nil
	}
	return &v
}

// Query translates the filter into a MongoDB query document. Range boundaries
// are inclusive on both ends.
func (f ListingFilter) Query() bson.M {
	query := bson.M{}

	if f.Category != nil {
		query["type"] = *f.Category
	}
	if f.City != nil {
		query["city"] = *f.City
	}
	if f.District != nil {
		query["district"] = *f.District
	}

	if priceRange := rangePredicate(f.MinPrice, f.MaxPrice); priceRange != nil {
		query["price"] = priceRange
	}
	if areaRange := rangePredicate(f.MinArea, f.MaxArea); areaRange != nil {
		query["area"] = areaRange
	}

	for _, key := range f.FeatureFlags {
		query["features."+key] = true
	}

	return query
}

func rangePredicate(min, max *float64) bson.M {
	if min == nil && max == nil {
		return nil
	}
	pred := bson.M{}
	if min != nil {
		pred["$gte"] = *min
	}
	if max != nil {
		pred["$lte"] = *max
	}
	return pred
}
