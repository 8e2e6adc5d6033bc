package provider

import (
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// ErrUnknownField is returned when a field name does not match any form field.
var ErrUnknownField = errors.New("unknown field")

// Record is a provider as stored and displayed.
//
// JSON tags define the persisted shape. Struct field order defines the
// validation precedence (see Validate).
type Record struct {
	ID      int64  `json:"id"`
	Name    string `json:"name" validate:"trimmed_required"`
	Contact string `json:"contact" validate:"trimmed_required"`
	Address string `json:"address" validate:"trimmed_required"`
	Phone   string `json:"phone" validate:"digits"`
	Email   string `json:"email" validate:"loose_email"`
}

// Blank returns the empty draft template. Its ID is unset.
func Blank() Record {
	return Record{}
}

// HasID reports whether the record carries an assigned identity.
func (r Record) HasID() bool {
	return r.ID != 0
}

// Field names an editable form field.
type Field string

// Editable fields, in form order.
const (
	FieldName    Field = "name"
	FieldContact Field = "contact"
	FieldAddress Field = "address"
	FieldPhone   Field = "phone"
	FieldEmail   Field = "email"
)

var fieldOrder = []Field{FieldName, FieldContact, FieldAddress, FieldPhone, FieldEmail}

// Fields returns the editable fields in form order.
func Fields() []Field {
	out := make([]Field, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// ParseField maps a field name to a Field.
func ParseField(name string) (Field, error) {
	for _, f := range fieldOrder {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Get returns the value of field f.
func (r Record) Get(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldContact:
		return r.Contact
	case FieldAddress:
		return r.Address
	case FieldPhone:
		return r.Phone
	case FieldEmail:
		return r.Email
	}
	return ""
}

// With returns a copy of r with field f replaced by value.
// Unknown fields leave the copy unchanged.
func (r Record) With(f Field, value string) Record {
	switch f {
	case FieldName:
		r.Name = value
	case FieldContact:
		r.Contact = value
	case FieldAddress:
		r.Address = value
	case FieldPhone:
		r.Phone = value
	case FieldEmail:
		r.Email = value
	}
	return r
}

// Normalize returns value in Unicode normalization form C.
func Normalize(value string) string {
	return norm.NFC.String(value)
}

// Normalized returns a copy of r with every field in NFC.
func (r Record) Normalized() Record {
	for _, f := range fieldOrder {
		r = r.With(f, Normalize(r.Get(f)))
	}
	return r
}
