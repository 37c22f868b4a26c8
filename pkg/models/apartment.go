package models

import "time"

// ApartmentStatus values mirror the listing lifecycle in the marketplace.
type ApartmentStatus string

const (
	ApartmentStatusDraft     ApartmentStatus = "draft"
	ApartmentStatusAvailable ApartmentStatus = "available"
	ApartmentStatusRented    ApartmentStatus = "rented"
	ApartmentStatusArchived  ApartmentStatus = "archived"
)

// Apartment is a listing owned by a landlord. The matching engine treats it
// as read-only input; nullable fields stay nil when the listing omits them.
type Apartment struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"owner_id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	City          string     `json:"city"`
	PostalCode    *string    `json:"postal_code,omitempty"`
	Price         *float64   `json:"price,omitempty"`
	Size          *float64   `json:"size,omitempty"`
	Rooms         *float64   `json:"rooms,omitempty"`
	Bathrooms     *float64   `json:"bathrooms,omitempty"`
	Amenities     []string   `json:"amenities"`
	PetFriendly   bool       `json:"pet_friendly"`
	Furnished     *bool      `json:"furnished,omitempty"`
	PropertyType  *string    `json:"property_type,omitempty"`
	Latitude      *float64   `json:"latitude,omitempty"`
	Longitude     *float64   `json:"longitude,omitempty"`
	AvailableFrom *time.Time `json:"available_from,omitempty"`
	AvailableTo   *time.Time `json:"available_to,omitempty"`
	Status        string     `json:"status"`
	Images        []string   `json:"images"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
