// Package content implements the editorial surface: blog articles with
// slug-based URLs, and user reviews of stores.
package content

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Article is a stored blog article.
type Article struct {
	ID        bson.ObjectID `bson:"_id" json:"id"`
	Title     string        `bson:"title" json:"title"`
	Slug      string        `bson:"slug" json:"slug"`
	Content   string        `bson:"content" json:"content"`
	CoverURL  string        `bson:"cover_url,omitempty" json:"coverUrl,omitempty"`
	Tags      []string      `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updatedAt"`
}

// Review is a stored store review.
type Review struct {
	ID        bson.ObjectID `bson:"_id" json:"id"`
	StoreID   bson.ObjectID `bson:"store_id" json:"storeId"`
	Rating    int           `bson:"rating" json:"rating"`
	Comment   string        `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
}
