// Package upload stores files submitted through the admin forms.  Each
// form accepts exactly one file; the saver validates the extension and
// size for the category, writes the bytes under a generated name and
// returns the path to record in the database.  Written files are never
// removed when the owning row is later deleted or its image replaced;
// that matches the observed behaviour of the site and is documented as a
// known limitation.
package upload

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Category selects the destination directory and validation rules for a
// saved file.
type Category int

const (
	Avatar  Category = iota // admin profile pictures -> uploads/
	Banner                  // home page banners -> uploads/banners/, 1200x500 only
	Section                 // section block images -> uploads/section/
	Post                    // blog post images -> uploads/posts_img/
)

// Validation failures reported to the user as flash messages.
var (
	ErrBadExtension  = errors.New("only jpg, jpeg and png files are allowed")
	ErrTooLarge      = errors.New("file exceeds the size limit")
	ErrBadDimensions = errors.New("image must be exactly 1200 x 500 pixels")
)

// Banner images must match the hero slot on the home page exactly.
const (
	bannerWidth  = 1200
	bannerHeight = 500
)

type rules struct {
	subdir   string
	maxBytes int64
}

var categoryRules = map[Category]rules{
	Avatar:  {subdir: "", maxBytes: 2 << 20},
	Banner:  {subdir: "banners", maxBytes: 3 << 20},
	Section: {subdir: "section", maxBytes: 2 << 20},
	Post:    {subdir: "posts_img", maxBytes: 2 << 20},
}

var allowedExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// Saved describes a stored file.  Name is the generated filename and
// PublicPath the "/uploads/..." path recorded in database rows.
type Saved struct {
	Name       string
	PublicPath string
}

// Saver writes uploaded files under a root directory (the public static
// asset root, e.g. "public/uploads").
type Saver struct {
	Root string
}

func NewSaver(root string) *Saver { return &Saver{Root: root} }

// Save validates and stores one uploaded file for the given category.
// Validation happens before any bytes reach disk; the banner dimension
// check decodes the written file and removes it on mismatch, so a
// rejected upload never leaves a file behind.
func (s *Saver) Save(fh *multipart.FileHeader, cat Category) (Saved, error) {
	r, ok := categoryRules[cat]
	if !ok {
		return Saved{}, fmt.Errorf("unknown upload category %d", cat)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExts[ext] {
		return Saved{}, ErrBadExtension
	}
	if fh.Size > r.maxBytes {
		return Saved{}, ErrTooLarge
	}

	dir := filepath.Join(s.Root, r.subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Saved{}, err
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(dir, name)
	if err := s.write(fh, dst, r.maxBytes); err != nil {
		return Saved{}, err
	}

	if cat == Banner {
		if err := checkBannerDimensions(dst); err != nil {
			_ = os.Remove(dst)
			return Saved{}, err
		}
	}

	public := "/uploads"
	if r.subdir != "" {
		public += "/" + r.subdir
	}
	return Saved{Name: name, PublicPath: public + "/" + name}, nil
}

// write copies the multipart file to dst, enforcing the byte limit even
// when the declared header size is wrong.
func (s *Saver) write(fh *multipart.FileHeader, dst string, maxBytes int64) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	n, err := io.Copy(out, io.LimitReader(src, maxBytes+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return err
	}
	if n > maxBytes {
		_ = os.Remove(dst)
		return ErrTooLarge
	}
	return nil
}

// checkBannerDimensions decodes the image header and requires the exact
// banner size.  Files that do not decode as jpeg/png are rejected too.
func checkBannerDimensions(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return ErrBadDimensions
	}
	if cfg.Width != bannerWidth || cfg.Height != bannerHeight {
		return ErrBadDimensions
	}
	return nil
}
