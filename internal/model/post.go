package model

import "time"

// Post is a blog entry stored in the `posts` table.  The slug is free
// text supplied by the author; the application does not verify it is
// unique, it simply fetches the first matching row.
type Post struct {
	ID        uint64    // posts.id
	Title     string    // posts.title
	Slug      string    // posts.slug
	Category  string    // posts.category
	Image     *string   // posts.image (stored filename, nullable)
	Content   string    // posts.content
	CreatedAt time.Time // posts.created_at
}
