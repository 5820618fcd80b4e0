package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/store"
	"github.com/aussiebroadwan/bookreview/pkg/httpx"
)

const maxPageSize = 100

// decode reads the JSON body into dst.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := httpx.DecodeJSON(w, r, dst); err != nil {
		return fmt.Errorf("%w: %w", errInvalidRequest, err)
	}
	return nil
}

// page reads ?limit= and ?offset=, clamping limit to maxPageSize.
func page(r *http.Request) (store.Page, error) {
	p := store.DefaultPage
	q := r.URL.Query()

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return store.Page{}, fmt.Errorf("%w: limit must be a positive integer", errInvalidRequest)
		}
		p.Limit = min(n, maxPageSize)
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return store.Page{}, fmt.Errorf("%w: offset must be a non-negative integer", errInvalidRequest)
		}
		p.Offset = n
	}
	return p, nil
}
