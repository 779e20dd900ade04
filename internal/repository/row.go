package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Row is one result row keyed by column name (or alias).
type Row map[string]any

// Has reports whether key is present and non-NULL.
func (r Row) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

func (r Row) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// StringPtr returns nil for NULL columns.
func (r Row) StringPtr(key string) *string {
	if !r.Has(key) {
		return nil
	}
	s := r.String(key)
	return &s
}

func (r Row) UUID(key string) uuid.UUID {
	switch v := r[key].(type) {
	case uuid.UUID:
		return v
	case [16]byte:
		return uuid.UUID(v)
	case []byte:
		if len(v) == 16 {
			id, err := uuid.FromBytes(v)
			if err == nil {
				return id
			}
		}
		id, _ := uuid.ParseBytes(v)
		return id
	case string:
		id, _ := uuid.Parse(v)
		return id
	default:
		return uuid.Nil
	}
}

func (r Row) Bool(key string) bool {
	v, _ := r[key].(bool)
	return v
}

func (r Row) Time(key string) time.Time {
	switch v := r[key].(type) {
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	}
	return time.Time{}
}

func (r Row) Int(key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
