package apartment

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/models"
)

type ApartmentRow struct {
	ID            sql.NullString  `db:"id"`
	OwnerID       sql.NullString  `db:"owner_id"`
	Title         sql.NullString  `db:"title"`
	Description   sql.NullString  `db:"description"`
	City          sql.NullString  `db:"city"`
	PostalCode    sql.NullString  `db:"postal_code"`
	Price         sql.NullFloat64 `db:"price"`
	Size          sql.NullFloat64 `db:"size"`
	Rooms         sql.NullFloat64 `db:"rooms"`
	Bathrooms     sql.NullFloat64 `db:"bathrooms"`
	Amenities     pq.StringArray  `db:"amenities"`
	PetFriendly   sql.NullBool    `db:"pet_friendly"`
	Furnished     sql.NullBool    `db:"furnished"`
	PropertyType  sql.NullString  `db:"property_type"`
	Latitude      sql.NullFloat64 `db:"latitude"`
	Longitude     sql.NullFloat64 `db:"longitude"`
	AvailableFrom sql.NullTime    `db:"available_from"`
	AvailableTo   sql.NullTime    `db:"available_to"`
	Status        sql.NullString  `db:"status"`
	Images        pq.StringArray  `db:"images"`
	CreatedAt     sql.NullTime    `db:"created_at"`
	UpdatedAt     sql.NullTime    `db:"updated_at"`
}

const (
	apartmentTable = "apartments"
)

var apartmentStruct = database.NewStruct(new(ApartmentRow))

func ToApartment(row *ApartmentRow) models.Apartment {
	return models.Apartment{
		ID:            row.ID.String,
		OwnerID:       row.OwnerID.String,
		Title:         row.Title.String,
		Description:   nullStringPtr(row.Description),
		City:          row.City.String,
		PostalCode:    nullStringPtr(row.PostalCode),
		Price:         nullFloatPtr(row.Price),
		Size:          nullFloatPtr(row.Size),
		Rooms:         nullFloatPtr(row.Rooms),
		Bathrooms:     nullFloatPtr(row.Bathrooms),
		Amenities:     []string(row.Amenities),
		PetFriendly:   row.PetFriendly.Bool,
		Furnished:     nullBoolPtr(row.Furnished),
		PropertyType:  nullStringPtr(row.PropertyType),
		Latitude:      nullFloatPtr(row.Latitude),
		Longitude:     nullFloatPtr(row.Longitude),
		AvailableFrom: nullTimePtr(row.AvailableFrom),
		AvailableTo:   nullTimePtr(row.AvailableTo),
		Status:        row.Status.String,
		Images:        []string(row.Images),
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullFloatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullBoolPtr(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Bool
	return &b
}

func nullTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
