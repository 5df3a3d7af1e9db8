package web

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var templateFuncs = template.FuncMap{
	"num":   func(v float64) string { return message.NewPrinter(language.English).Sprintf("%.2f", v) },
	"int":   func(v int64) string { return message.NewPrinter(language.English).Sprintf("%d", v) },
	"upper": strings.ToUpper,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006")
	},
	"datetime": func(t time.Time) string { return t.Format("Jan 2, 2006 15:04") },
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"label": func(v string) string {
		// Casers are stateful; build one per call.
		return cases.Title(language.English).String(strings.ReplaceAll(v, "_", " "))
	},
}

// pager slices a list of n rows into PageSize pages.
type pager struct {
	Page       int
	TotalPages int
	Start, End int
}

// paginate clamps page into range. An empty list still has one page.
func paginate(n, page int) pager {
	pages := (n + PageSize - 1) / PageSize
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if end > n {
		end = n
	}
	if start > n {
		start = n
	}
	return pager{Page: page, TotalPages: pages, Start: start, End: end}
}

func (p pager) HasPrev() bool { return p.Page > 1 }
func (p pager) HasNext() bool { return p.Page < p.TotalPages }

// pageURL rebuilds path?query with page replaced.
func pageURL(path string, q url.Values, page int) string {
	out := url.Values{}
	for k, v := range q {
		out[k] = v
	}
	out.Set("page", strconv.Itoa(page))
	return path + "?" + out.Encode()
}

func atoiDefault(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}
