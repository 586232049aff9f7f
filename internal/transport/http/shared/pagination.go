package shared

import (
	"net/http"
	"strconv"
)

// Pagination is the page window for candidate list endpoints.
type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination reads limit and offset from the query string. Values that
// are missing, unparseable, or out of range fall back to the defaults rather
// than failing the request, and limit is clamped to maxLimit when set.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Pagination {
	p := Pagination{Limit: defaultLimit}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		p.Limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		p.Offset = v
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}
