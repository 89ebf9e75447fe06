// Package aggregate computes grouped counts, top-N rankings and bucketed
// time series over view records that were already narrowed by date range
// and filter.
package aggregate

import (
	"sort"

	"blog-analytics-service/internal/analytics/core/domain"
)

// TopLimit is the size of every top-N ranking.
const TopLimit = 10

type counter struct {
	label  string
	author string
	blogs  map[int64]struct{}
	views  int64
}

// tally groups views by the key returned from keyOf. Records for which keyOf
// reports false are skipped.
type tally struct {
	order  []string
	groups map[string]*counter
}

func newTally() *tally {
	return &tally{groups: map[string]*counter{}}
}

func (t *tally) add(key, label, author string, blogID int64) {
	c, ok := t.groups[key]
	if !ok {
		c = &counter{label: label, author: author, blogs: map[int64]struct{}{}}
		t.groups[key] = c
		t.order = append(t.order, key)
	}
	c.blogs[blogID] = struct{}{}
	c.views++
}

// sorted returns the counters by views descending, label ascending and, for
// equal labels, author ascending.
func (t *tally) sorted() []*counter {
	out := make([]*counter, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.groups[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.views != b.views {
			return a.views > b.views
		}
		if a.label != b.label {
			return a.label < b.label
		}
		return a.author < b.author
	})
	return out
}

// GroupBy counts views and distinct blogs per country name or per viewer
// full name. Views without a country (resp. viewer) are left out. An empty
// result fails with domain.ErrDataNotFound.
func GroupBy(views []domain.ViewRecord, key domain.GroupKey) ([]domain.GroupedRow, error) {
	t := newTally()

	for _, v := range views {
		switch key {
		case domain.GroupByCountry:
			if v.Country == nil {
				continue
			}
			t.add(v.Country.Name, v.Country.Name, "", v.Blog.ID)
		case domain.GroupByUser:
			if v.User == nil {
				continue
			}
			name := v.User.FullName()
			t.add(name, name, "", v.Blog.ID)
		default:
			return nil, domain.InvalidFilter("Invalid object_type: %s. Must be 'country' or 'user'", key)
		}
	}

	if len(t.order) == 0 {
		return nil, domain.DataNotFound("No data found for the specified criteria")
	}

	rows := make([]domain.GroupedRow, 0, len(t.order))
	for _, c := range t.sorted() {
		rows = append(rows, domain.GroupedRow{
			Label: c.label,
			Blogs: int64(len(c.blogs)),
			Views: c.views,
		})
	}
	return rows, nil
}
