package aggregate

import (
	"strconv"

	"blog-analytics-service/internal/analytics/core/domain"
)

// Top ranks blog authors, countries or blogs by view count and keeps the
// first n. No matching views yields an empty slice, not an error.
func Top(views []domain.ViewRecord, kind domain.TopKind, n int) ([]domain.TopRow, error) {
	t := newTally()

	for _, v := range views {
		switch kind {
		case domain.TopByUser:
			if v.Blog.Author == nil {
				continue
			}
			name := v.Blog.Author.FullName()
			t.add(name, name, "", v.Blog.ID)
		case domain.TopByCountry:
			if v.Country == nil {
				continue
			}
			t.add(v.Country.Name, v.Country.Name, "", v.Blog.ID)
		case domain.TopByBlog:
			var author string
			if v.Blog.Author != nil {
				author = v.Blog.Author.Username
			}
			// title and author username together identify a row
			key := strconv.Quote(v.Blog.Title) + "/" + strconv.Quote(author)
			t.add(key, v.Blog.Title, author, v.Blog.ID)
		default:
			return nil, domain.InvalidFilter("Invalid top_type: %s. Must be 'user', 'country', or 'blog'", kind)
		}
	}

	ranked := t.sorted()
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}

	rows := make([]domain.TopRow, 0, len(ranked))
	for _, c := range ranked {
		row := domain.TopRow{Kind: kind, Label: c.label, Views: c.views}
		if kind == domain.TopByBlog {
			row.Author = c.author
		} else {
			row.Blogs = int64(len(c.blogs))
		}
		rows = append(rows, row)
	}
	return rows, nil
}
