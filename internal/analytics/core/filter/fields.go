package filter

import (
	"strings"
	"time"

	"blog-analytics-service/internal/analytics/core/domain"
)

type valueKind int

const (
	kindInt valueKind = iota
	kindString
	kindTime
)

// accessor reads one attribute off the record's relation graph. ok is false
// when a relation on the path is null.
type accessor struct {
	kind valueKind
	get  func(domain.ViewRecord) (any, bool)
}

var fields = buildFields()

func buildFields() map[string]accessor {
	m := map[string]accessor{
		"id":        {kindInt, func(r domain.ViewRecord) (any, bool) { return r.ID, true }},
		"viewed_at": {kindTime, func(r domain.ViewRecord) (any, bool) { return r.ViewedAt, true }},
		"duration":  {kindInt, func(r domain.ViewRecord) (any, bool) { return int64(r.Duration), true }},

		"blog":            {kindInt, func(r domain.ViewRecord) (any, bool) { return r.Blog.ID, true }},
		"blog.id":         {kindInt, func(r domain.ViewRecord) (any, bool) { return r.Blog.ID, true }},
		"blog.title":      {kindString, func(r domain.ViewRecord) (any, bool) { return r.Blog.Title, true }},
		"blog.created_at": {kindTime, func(r domain.ViewRecord) (any, bool) { return r.Blog.CreatedAt, true }},
	}

	addUser(m, "user", func(r domain.ViewRecord) *domain.UserRef { return r.User })
	addUser(m, "blog.author", func(r domain.ViewRecord) *domain.UserRef { return r.Blog.Author })
	addCountry(m, "country", func(r domain.ViewRecord) *domain.CountryRef { return r.Country })
	addCountry(m, "blog.country", func(r domain.ViewRecord) *domain.CountryRef { return r.Blog.Country })

	return m
}

func addUser(m map[string]accessor, prefix string, rel func(domain.ViewRecord) *domain.UserRef) {
	attr := func(kind valueKind, pick func(*domain.UserRef) any) accessor {
		return accessor{kind, func(r domain.ViewRecord) (any, bool) {
			u := rel(r)
			if u == nil {
				return nil, false
			}
			return pick(u), true
		}}
	}
	id := attr(kindInt, func(u *domain.UserRef) any { return u.ID })
	m[prefix] = id
	m[prefix+".id"] = id
	m[prefix+".username"] = attr(kindString, func(u *domain.UserRef) any { return u.Username })
	m[prefix+".first_name"] = attr(kindString, func(u *domain.UserRef) any { return u.FirstName })
	m[prefix+".last_name"] = attr(kindString, func(u *domain.UserRef) any { return u.LastName })
}

func addCountry(m map[string]accessor, prefix string, rel func(domain.ViewRecord) *domain.CountryRef) {
	attr := func(kind valueKind, pick func(*domain.CountryRef) any) accessor {
		return accessor{kind, func(r domain.ViewRecord) (any, bool) {
			c := rel(r)
			if c == nil {
				return nil, false
			}
			return pick(c), true
		}}
	}
	id := attr(kindInt, func(c *domain.CountryRef) any { return c.ID })
	m[prefix] = id
	m[prefix+".id"] = id
	m[prefix+".name"] = attr(kindString, func(c *domain.CountryRef) any { return c.Name })
	m[prefix+".code"] = attr(kindString, func(c *domain.CountryRef) any { return c.Code })
}

// normalizePath accepts both "blog.author.username" and the legacy
// "blog__author__username" notation.
func normalizePath(path string) string {
	return strings.ReplaceAll(strings.TrimSpace(path), "__", ".")
}

func lookupField(path string) (accessor, bool) {
	a, ok := fields[normalizePath(path)]
	return a, ok
}

// Fields returns the filterable paths in dotted notation.
func Fields() []string {
	out := make([]string, 0, len(fields))
	for k := range fields {
		out = append(out, k)
	}
	return out
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}
