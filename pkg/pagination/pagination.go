package pagination

import (
	"net/url"
	"strconv"
)

// Page is the envelope returned by every list endpoint.
type Page struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

func Offset(page, limit int) int {
	return (page - 1) * limit
}

// New builds the page envelope. requestURL is the absolute URL of the current
// request; next/previous point at the same URL with the page parameter adjusted
// and are null when the neighbouring page does not exist.
func New(count, page, limit int, requestURL string, results interface{}) Page {
	p := Page{
		Count:   count,
		Results: results,
	}

	if limit <= 0 {
		return p
	}

	if page*limit < count {
		p.Next = pageURL(requestURL, page+1)
	}
	if page > 1 {
		p.Previous = pageURL(requestURL, page-1)
	}

	return p
}

func pageURL(requestURL string, page int) *string {
	parsed, err := url.Parse(requestURL)
	if err != nil {
		return nil
	}

	query := parsed.Query()
	query.Set("page", strconv.Itoa(page))
	parsed.RawQuery = query.Encode()

	s := parsed.String()
	return &s
}
