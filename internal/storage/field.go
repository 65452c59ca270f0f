package storage

import (
	"fmt"
	"strings"
)

// Field names a column of the users table.
type Field string

const (
	FieldID             Field = "id"
	FieldEmail          Field = "email"
	FieldHashedPassword Field = "hashed_password"
	FieldSessionID      Field = "session_id"
	FieldResetToken     Field = "reset_token"
)

// Fields lists every column in declaration order.
var Fields = []Field{FieldID, FieldEmail, FieldHashedPassword, FieldSessionID, FieldResetToken}

// Valid reports whether f is a real User field.
func (f Field) Valid() bool {
	switch f {
	case FieldID, FieldEmail, FieldHashedPassword, FieldSessionID, FieldResetToken:
		return true
	}
	return false
}

// Column returns the SQL column name. Only call it on validated fields.
func (f Field) Column() string {
	return string(f)
}

func (f Field) nullable() bool {
	return f == FieldSessionID || f == FieldResetToken
}

// accepts reports whether v has the Go type stored in column f.
func (f Field) accepts(v any) bool {
	switch f {
	case FieldID:
		_, ok := v.(int64)
		return ok
	case FieldEmail:
		_, ok := v.(string)
		return ok
	case FieldHashedPassword:
		b, ok := v.([]byte)
		return ok && b != nil
	case FieldSessionID, FieldResetToken:
		if v == nil {
			return true
		}
		_, ok := v.(string)
		return ok
	}
	return false
}

// Filter is an exact-match predicate on one field.
type Filter struct {
	Field Field
	Value any
}

// ByID matches the user with the given id.
func ByID(id int64) Filter { return Filter{Field: FieldID, Value: id} }

// ByEmail matches users with the given email.
func ByEmail(email string) Filter { return Filter{Field: FieldEmail, Value: email} }

// BySessionID matches the user holding the given session id.
func BySessionID(sessionID string) Filter { return Filter{Field: FieldSessionID, Value: sessionID} }

// ByResetToken matches the user holding the given reset token.
func ByResetToken(token string) Filter { return Filter{Field: FieldResetToken, Value: token} }

// Update sets one field to a new value. A nil Value clears a nullable field.
type Update struct {
	Field Field
	Value any
}

// SetEmail replaces the user's email.
func SetEmail(email string) Update { return Update{Field: FieldEmail, Value: email} }

// SetHashedPassword replaces the stored password hash.
func SetHashedPassword(hash []byte) Update { return Update{Field: FieldHashedPassword, Value: hash} }

// SetSessionID records the active session id.
func SetSessionID(sessionID string) Update { return Update{Field: FieldSessionID, Value: sessionID} }

// ClearSessionID removes the active session id.
func ClearSessionID() Update { return Update{Field: FieldSessionID, Value: nil} }

// SetResetToken records a pending reset token.
func SetResetToken(token string) Update { return Update{Field: FieldResetToken, Value: token} }

// ClearResetToken removes the pending reset token.
func ClearResetToken() Update { return Update{Field: FieldResetToken, Value: nil} }

// ValidateFilters checks every filter before a lookup runs.
func ValidateFilters(filters []Filter) error {
	if len(filters) == 0 {
		return fmt.Errorf("%w: no filters given", ErrInvalidFilter)
	}
	for _, f := range filters {
		if !f.Field.Valid() {
			return fmt.Errorf("%w: unknown field %q", ErrInvalidFilter, f.Field)
		}
		// A nil lookup value would read as "IS NULL" in some engines and as no match in others.
		if f.Value == nil || !f.Field.accepts(f.Value) {
			return fmt.Errorf("%w: bad value type %T for %s", ErrInvalidFilter, f.Value, f.Field)
		}
	}
	return nil
}

// ValidateUpdates checks every update before any change is written.
func ValidateUpdates(updates []Update) error {
	if len(updates) == 0 {
		return fmt.Errorf("%w: no updates given", ErrInvalidField)
	}
	seen := make(map[Field]bool, len(updates))
	for _, u := range updates {
		if !u.Field.Valid() {
			return fmt.Errorf("%w: unknown field %q", ErrInvalidField, u.Field)
		}
		if u.Field == FieldID {
			return fmt.Errorf("%w: id is immutable", ErrInvalidField)
		}
		if u.Value == nil && !u.Field.nullable() {
			return fmt.Errorf("%w: %s cannot be cleared", ErrInvalidField, u.Field)
		}
		if !u.Field.accepts(u.Value) {
			return fmt.Errorf("%w: bad value type %T for %s", ErrInvalidField, u.Value, u.Field)
		}
		if seen[u.Field] {
			return fmt.Errorf("%w: %s set twice", ErrInvalidField, u.Field)
		}
		seen[u.Field] = true
	}
	return nil
}

// WhereClause renders validated filters as "col = $1 AND col = $2" using the
// placeholder function and returns the matching arguments.
func WhereClause(filters []Filter, placeholder func(n int) string) (string, []any) {
	parts := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for i, f := range filters {
		parts = append(parts, fmt.Sprintf("%s = %s", f.Field.Column(), placeholder(i+1)))
		args = append(args, f.Value)
	}
	return strings.Join(parts, " AND "), args
}

// SetClause renders validated updates as "col = $2, col = $3", numbering
// placeholders from offset+1, and returns the matching arguments.
func SetClause(updates []Update, offset int, placeholder func(n int) string) (string, []any) {
	parts := make([]string, 0, len(updates))
	args := make([]any, 0, len(updates))
	for i, u := range updates {
		parts = append(parts, fmt.Sprintf("%s = %s", u.Field.Column(), placeholder(offset+i+1)))
		args = append(args, u.Value)
	}
	return strings.Join(parts, ", "), args
}

// FilterFields lists the filtered fields, for error context that must not
// carry emails or tokens.
func FilterFields(filters []Filter) []string {
	out := make([]string, 0, len(filters))
	for _, f := range filters {
		out = append(out, string(f.Field))
	}
	return out
}
