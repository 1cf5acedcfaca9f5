package client

import (
	"net/url"
	"strconv"

	dualcaster "github.com/dualcaster-deals/dualcaster/app"
)

// Page carries pagination state for list endpoints. The zero value means
// "first page, default size" - list builders always emit page and page_size
// so the backend never has to guess.
type Page struct {
	Page     int
	PageSize int
}

func (p Page) values() url.Values {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = dualcaster.DefaultPageSize
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("page_size", strconv.Itoa(p.PageSize))
	return q
}

// setIfNotEmpty adds an optional string parameter - unset filters are
// excluded from the query string entirely
func setIfNotEmpty(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

// setIfNotNil adds an optional tri-state boolean parameter
func setIfNotNil(q url.Values, key string, value *bool) {
	if value != nil {
		q.Set(key, strconv.FormatBool(*value))
	}
}
