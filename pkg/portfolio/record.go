package portfolio

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one decoded summary or detail entry. The id field is the join key between
// the summary and detail tables; every other field is free-form.
type Record map[string]interface{}

// ID returns the record's integer id. JSON numbers and numeric strings are accepted.
func (r Record) ID() (int, bool) {
	return toInt(r["id"])
}

// String returns field as text, or "" when it is missing.
func (r Record) String(field string) string {
	switch v := r[field].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
