package posts

import "time"

// Post is a blog entry owned by a single user. Author holds the owner's
// internal user id and never changes after creation. Shared gates the
// unauthenticated read path and defaults to false.
type Post struct {
	ID        string    `bson:"id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	Author    string    `bson:"author" json:"author"`
	Shared    bool      `bson:"shared" json:"shared"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Update describes a partial change to a post. Nil fields are left unchanged.
type Update struct {
	Title   *string
	Content *string
	Shared  *bool
}
