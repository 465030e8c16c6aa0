package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListingCategory is the closed set of property categories.
type ListingCategory string

const (
	CategoryApartment  ListingCategory = "Apartment"
	CategoryCommercial ListingCategory = "Commercial"
	CategoryLand       ListingCategory = "Land"
	CategoryField      ListingCategory = "Field"
	CategoryFarm       ListingCategory = "Farm"
	CategoryFactory    ListingCategory = "Factory"
)

// ListingType distinguishes rentals from sales. Only meaningful for apartments;
// the schema does not enforce that, the admin UI decides which fields apply.
type ListingType string

const (
	ListingForRent ListingType = "ForRent"
	ListingForSale ListingType = "ForSale"
)

// ValidCategories returns the allowed category values in declaration order.
func ValidCategories() []ListingCategory {
	return []ListingCategory{
		CategoryApartment, CategoryCommercial, CategoryLand,
		CategoryField, CategoryFarm, CategoryFactory,
	}
}

// IsValidCategory reports whether v is a member of the category enumeration.
func IsValidCategory(v ListingCategory) bool {
	for _, c := range ValidCategories() {
		if c == v {
			return true
		}
	}
	return false
}

// IsValidListingType reports whether v is ForRent or ForSale.
func IsValidListingType(v ListingType) bool {
	return v == ListingForRent || v == ListingForSale
}

// Features is the union of all type-specific optional attributes. Every field
// is independently optional; which subset is meaningful depends on the parent
// listing's category. All fields are pointers so that partial updates can
// distinguish "not supplied" from a zero value, and omitted keys are never
// written to the stored document.
type Features struct {
	Floor              *int     `bson:"floor,omitempty" json:"floor,omitempty"`
	HeatingType        *string  `bson:"heatingType,omitempty" json:"heatingType,omitempty"`
	KitchenType        *string  `bson:"kitchenType,omitempty" json:"kitchenType,omitempty"`
	HasParking         *bool    `bson:"hasParking,omitempty" json:"hasParking,omitempty"`
	IsFurnished        *bool    `bson:"isFurnished,omitempty" json:"isFurnished,omitempty"`
	IsInComplex        *bool    `bson:"isInComplex,omitempty" json:"isInComplex,omitempty"`
	BlockNo            *string  `bson:"blockNo,omitempty" json:"blockNo,omitempty"`
	ParcelNo           *string  `bson:"parcelNo,omitempty" json:"parcelNo,omitempty"`
	SheetNo            *string  `bson:"sheetNo,omitempty" json:"sheetNo,omitempty"`
	BuildingAge        *int     `bson:"buildingAge,omitempty" json:"buildingAge,omitempty"`
	BuildingFloorCount *int     `bson:"buildingFloorCount,omitempty" json:"buildingFloorCount,omitempty"`
	LocatedFloor       *int     `bson:"locatedFloor,omitempty" json:"locatedFloor,omitempty"`
	HasBalcony         *bool    `bson:"hasBalcony,omitempty" json:"hasBalcony,omitempty"`
	HasElevator        *bool    `bson:"hasElevator,omitempty" json:"hasElevator,omitempty"`
	LandArea           *float64 `bson:"landArea,omitempty" json:"landArea,omitempty"`
	FarmHeating        *string  `bson:"farmHeating,omitempty" json:"farmHeating,omitempty"`
	FarmBuildingType   *string  `bson:"farmBuildingType,omitempty" json:"farmBuildingType,omitempty"`
	FarmDeedStatus     *string  `bson:"farmDeedStatus,omitempty" json:"farmDeedStatus,omitempty"`
	ZoningStatus       *string  `bson:"zoningStatus,omitempty" json:"zoningStatus,omitempty"`
}

// SetFields returns the bson field name and value of every non-nil feature,
// for key-by-key merging into the stored sub-document.
func (f *Features) SetFields() map[string]interface{} {
	if f == nil {
		return nil
	}
	set := map[string]interface{}{}
	put := func(key string, v interface{}, present bool) {
		if present {
			set[key] = v
		}
	}
	put("floor", f.Floor, f.Floor != nil)
	put("heatingType", f.HeatingType, f.HeatingType != nil)
	put("kitchenType", f.KitchenType, f.KitchenType != nil)
	put("hasParking", f.HasParking, f.HasParking != nil)
	put("isFurnished", f.IsFurnished, f.IsFurnished != nil)
	put("isInComplex", f.IsInComplex, f.IsInComplex != nil)
	put("blockNo", f.BlockNo, f.BlockNo != nil)
	put("parcelNo", f.ParcelNo, f.ParcelNo != nil)
	put("sheetNo", f.SheetNo, f.SheetNo != nil)
	put("buildingAge", f.BuildingAge, f.BuildingAge != nil)
	put("buildingFloorCount", f.BuildingFloorCount, f.BuildingFloorCount != nil)
	put("locatedFloor", f.LocatedFloor, f.LocatedFloor != nil)
	put("hasBalcony", f.HasBalcony, f.HasBalcony != nil)
	put("hasElevator", f.HasElevator, f.HasElevator != nil)
	put("landArea", f.LandArea, f.LandArea != nil)
	put("farmHeating", f.FarmHeating, f.FarmHeating != nil)
	put("farmBuildingType", f.FarmBuildingType, f.FarmBuildingType != nil)
	put("farmDeedStatus", f.FarmDeedStatus, f.FarmDeedStatus != nil)
	put("zoningStatus", f.ZoningStatus, f.ZoningStatus != nil)
	return set
}

// Listing represents a property listing in the catalog.
type Listing struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Category    ListingCategory    `bson:"type" json:"type"`
	ListingType ListingType        `bson:"listingType,omitempty" json:"listingType,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Area        float64            `bson:"area" json:"area"`
	Description string             `bson:"description" json:"description"`
	City        string             `bson:"city" json:"city"`
	District    string             `bson:"district" json:"district"`
	Address     string             `bson:"address" json:"address"`
	Images      []string           `bson:"images" json:"images"` // public upload paths, insertion order = display order
	Features    Features           `bson:"features" json:"features"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
