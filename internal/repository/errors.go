// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. Lookups
// that match no row return sql.ErrNoRows unchanged; handlers surface
// it as a 404 page or a flash-and-redirect depending on the route.
package repository

import "errors"

// ErrEmailExists is returned when registration or a profile update would
// duplicate an existing email address.
var ErrEmailExists = errors.New("email already exists")
