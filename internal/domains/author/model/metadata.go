package model

import "time"

// Metadata is the author_metadata document. AuthorID is the string form of
// the relational author id.
type Metadata struct {
	AuthorID    string      `json:"author_id" bson:"author_id"`
	Awards      []string    `json:"awards" bson:"awards"`
	Website     string      `json:"website" bson:"website"`
	SocialMedia SocialMedia `json:"social_media" bson:"social_media"`
	UpdatedAt   time.Time   `json:"updated_at" bson:"updated_at"`
}

type SocialMedia struct {
	Twitter   string `json:"twitter" bson:"twitter"`
	Instagram string `json:"instagram" bson:"instagram"`
}
