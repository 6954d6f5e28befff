package model

import "time"

// Inquiry is a contact form submission stored in the `query_data` table.
type Inquiry struct {
	ID        uint64    // query_data.id
	FullName  string    // query_data.full_name
	MobileNo  string    // query_data.mobile_no
	Email     string    // query_data.email
	Message   string    // query_data.message
	CreatedAt time.Time // query_data.created_at
}
