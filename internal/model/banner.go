package model

import "time"

// Banner represents a hero image shown on the home page, stored in the
// `banners` table.  At most one row may have IsActive set at any time;
// the repository enforces this by clearing and setting the flag inside a
// single transaction.
//
// Fields:
//  ID        - primary key identifier.
//  Title     - heading rendered over the banner image.
//  Content   - supporting text rendered under the title.
//  ImagePath - public path of the uploaded image (exactly 1200x500 px).
//  IsActive  - whether this banner is the one displayed on the home page.
//  CreatedAt - creation timestamp.
type Banner struct {
	ID        uint64    // banners.id
	Title     string    // banners.title
	Content   string    // banners.content
	ImagePath string    // banners.image_path
	IsActive  bool      // banners.is_active
	CreatedAt time.Time // banners.created_at
}
