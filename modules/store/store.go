// Package store implements merchant store CRUD with slug-based lookup.
package store

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Store is the stored merchant document.
type Store struct {
	ID          bson.ObjectID `bson:"_id" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Slug        string        `bson:"slug" json:"slug"`
	Website     string        `bson:"website" json:"website"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Category    string        `bson:"category,omitempty" json:"category,omitempty"`
	LogoURL     string        `bson:"logo_url,omitempty" json:"logoUrl,omitempty"`
	Rating      float64       `bson:"rating" json:"rating"`
	ReviewCount int64         `bson:"review_count" json:"reviewCount"`
	CreatedAt   time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updatedAt"`
}

// ListParams filters and pages the store listing.
type ListParams struct {
	Page     int64
	PerPage  int64
	Category string
}
