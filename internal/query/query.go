package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Params carries the list-endpoint options shared by every dataset:
// free-text search plus optional page/per_page windowing.
type Params struct {
	Search  string
	Page    int
	PerPage int
}

func Parse(c *fiber.Ctx) Params {
	p := Params{Search: strings.TrimSpace(c.Query("search"))}
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Page = n
		}
	}
	if v := c.Query("per_page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.PerPage = n
		}
	}
	return p
}

// Paged reports whether the caller asked for a windowed response. Both
// page and per_page must be present, matching the dashboard's table widgets.
func (p Params) Paged() bool { return p.Page > 0 && p.PerPage > 0 }

// Window returns the half-open [lo, hi) bounds of the requested page,
// clamped to the collection size.
func (p Params) Window(total int) (int, int) {
	lo := (p.Page - 1) * p.PerPage
	if lo > total {
		lo = total
	}
	hi := lo + p.PerPage
	if hi > total {
		hi = total
	}
	return lo, hi
}

func (p Params) TotalPages(total int) int {
	if p.PerPage <= 0 {
		return 1
	}
	pages := total / p.PerPage
	if total%p.PerPage != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}
	return pages
}

// Page wraps a windowed slice with the metadata the dashboard tables read.
type Page struct {
	Items      any `json:"items"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Matches reports whether any field contains the search text,
// case-insensitive. An empty search matches everything.
func Matches(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

// PathParam returns the named route parameter with URL escaping undone,
// so keys like "PN 12/A" survive the round trip from the client.
func PathParam(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	if dec, err := url.PathUnescape(raw); err == nil {
		return dec
	}
	return raw
}
