package models

import "time"

// Feedback IDs are sequential integers issued from a counter document, so
// they survive in URLs and stay stable across edits.
type Feedback struct {
	ID            int64     `bson:"_id" json:"id"`
	Title         string    `bson:"title" json:"title"`
	Content       string    `bson:"content" json:"content"`
	OwnerUsername string    `bson:"owner_username" json:"owner_username"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}
