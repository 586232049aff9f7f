package verification

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldPath addresses one editable value inside an entity. It parses and
// re-serializes the dotted/bracketed strings the presentation layer uses,
// such as "city" or "workExperiences[0].employerName", so path handling is
// checked in one place instead of scattered string slicing.
type FieldPath struct {
	Collection string // empty for a root field
	Index      int    // -1 when Collection is empty
	Field      string
}

// ParseFieldPath accepts "field" or "collection[index].field".
func ParseFieldPath(raw string) (FieldPath, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return FieldPath{}, fmt.Errorf("field path is empty")
	}

	open := strings.IndexByte(raw, '[')
	if open < 0 {
		if strings.ContainsAny(raw, ".]") {
			return FieldPath{}, fmt.Errorf("malformed field path %q", raw)
		}
		if !validSegment(raw) {
			return FieldPath{}, fmt.Errorf("invalid field name %q", raw)
		}
		return FieldPath{Index: -1, Field: raw}, nil
	}

	closeIdx := strings.IndexByte(raw, ']')
	if closeIdx < open+1 || closeIdx+1 >= len(raw) || raw[closeIdx+1] != '.' {
		return FieldPath{}, fmt.Errorf("malformed field path %q", raw)
	}

	collection := raw[:open]
	indexRaw := raw[open+1 : closeIdx]
	field := raw[closeIdx+2:]

	if !validSegment(collection) || !validSegment(field) {
		return FieldPath{}, fmt.Errorf("malformed field path %q", raw)
	}
	index, err := strconv.Atoi(indexRaw)
	if err != nil || index < 0 {
		return FieldPath{}, fmt.Errorf("invalid index in field path %q", raw)
	}
	return FieldPath{Collection: collection, Index: index, Field: field}, nil
}

func (p FieldPath) String() string {
	if p.Collection == "" {
		return p.Field
	}
	return fmt.Sprintf("%s[%d].%s", p.Collection, p.Index, p.Field)
}

func (p FieldPath) IsRoot() bool {
	return p.Collection == ""
}

func validSegment(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !isLetter && !isDigit && r != '_' {
			return false
		}
	}
	return true
}
