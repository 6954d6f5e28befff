package model

import "time"

// SectionBlock is a home page content module (image + title + text) in
// the `section_blocks` table.  Only the most recently created row is
// ever displayed on the home page.
type SectionBlock struct {
	ID        uint64    // section_blocks.id
	Title     string    // section_blocks.title
	Content   string    // section_blocks.content
	Image     string    // section_blocks.image (public path)
	CreatedAt time.Time // section_blocks.created_at
}
