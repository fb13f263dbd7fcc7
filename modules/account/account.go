// Package account implements user registration, login and profile
// management. Passwords are stored as bcrypt hashes and never leave the
// service; the public User shape omits the hash entirely.
package account

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is the stored account document.
type User struct {
	ID           bson.ObjectID  `bson:"_id" json:"id"`
	Name         string         `bson:"name" json:"name"`
	Email        string         `bson:"email" json:"email"`
	PasswordHash []byte         `bson:"password_hash" json:"-"`
	Currency     string         `bson:"currency" json:"currency"`
	Newsletter   bool           `bson:"newsletter" json:"newsletter"`
	Address      map[string]any `bson:"address,omitempty" json:"address,omitempty"`
	Interests    []string       `bson:"interests,omitempty" json:"interests,omitempty"`
	CreatedAt    time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time      `bson:"updated_at" json:"updatedAt"`
}
