package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"blog-analytics-service/internal/analytics/core/domain"
	"blog-analytics-service/internal/analytics/core/ports"
)

const viewColumns = `
    v.id, v.viewed_at, v.duration,
    b.id, b.title, b.created_at,
    a.id, a.username, a.first_name, a.last_name,
    bc.id, bc.name, bc.code,
    u.id, u.username, u.first_name, u.last_name,
    c.id, c.name, c.code`

const viewJoins = `
FROM blog_views v
JOIN blogs b ON b.id = v.blog_id
JOIN users a ON a.id = b.author_id
LEFT JOIN countries bc ON bc.id = b.country_id
LEFT JOIN users u ON u.id = v.user_id
LEFT JOIN countries c ON c.id = v.country_id`

type AnalyticsRepository struct {
	db DB
}

func NewAnalyticsRepository(db DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// whereBuilder collects AND-ed conditions with $N placeholders.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "\nWHERE " + strings.Join(w.conds, " AND ")
}

// ListViews loads the views matching the query's columns in viewed_at order
// and keeps those accepted by q.Match.
func (r *AnalyticsRepository) ListViews(ctx context.Context, q ports.ViewQuery) ([]domain.ViewRecord, error) {
	var w whereBuilder
	if q.Since != nil {
		w.add("v.viewed_at >= $%d", q.Since.UTC())
	}
	if q.Until != nil {
		w.add("v.viewed_at <= $%d", q.Until.UTC())
	}
	if q.AuthorID != nil {
		w.add("b.author_id = $%d", *q.AuthorID)
	}
	if q.BlogID != nil {
		w.add("v.blog_id = $%d", *q.BlogID)
	}
	if q.UserID != nil {
		w.add("v.user_id = $%d", *q.UserID)
	}
	if q.CountryID != nil {
		w.add("v.country_id = $%d", *q.CountryID)
	}

	query := "SELECT" + viewColumns + viewJoins + w.String() + "\nORDER BY v.viewed_at, v.id"

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []domain.ViewRecord
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, err
		}
		if q.Match != nil && !q.Match.Match(v) {
			continue
		}
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}

func (r *AnalyticsRepository) ListBlogs(ctx context.Context, q ports.BlogQuery) ([]domain.BlogRecord, error) {
	var w whereBuilder
	if q.AuthorID != nil {
		w.add("author_id = $%d", *q.AuthorID)
	}

	query := `
SELECT id, title, author_id, country_id, created_at
FROM blogs` + w.String() + `
ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []domain.BlogRecord
	for rows.Next() {
		var (
			b       domain.BlogRecord
			country sql.NullInt64
		)
		if err := rows.Scan(&b.ID, &b.Title, &b.AuthorID, &country, &b.CreatedAt); err != nil {
			return nil, err
		}
		if country.Valid {
			id := country.Int64
			b.CountryID = &id
		}
		b.CreatedAt = b.CreatedAt.UTC()
		blogs = append(blogs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

// Ping reports whether the database answers.
func (r *AnalyticsRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type nullUser struct {
	id                    sql.NullInt64
	username, first, last sql.NullString
}

func (n *nullUser) dest() []any {
	return []any{&n.id, &n.username, &n.first, &n.last}
}

func (n *nullUser) ref() *domain.UserRef {
	if !n.id.Valid {
		return nil
	}
	return &domain.UserRef{ID: n.id.Int64, Username: n.username.String, FirstName: n.first.String, LastName: n.last.String}
}

type nullCountry struct {
	id         sql.NullInt64
	name, code sql.NullString
}

func (n *nullCountry) dest() []any {
	return []any{&n.id, &n.name, &n.code}
}

func (n *nullCountry) ref() *domain.CountryRef {
	if !n.id.Valid {
		return nil
	}
	return &domain.CountryRef{ID: n.id.Int64, Name: n.name.String, Code: n.code.String}
}

func scanView(rows RowScanner) (domain.ViewRecord, error) {
	var (
		v                     domain.ViewRecord
		viewedAt, blogCreated time.Time
		author                domain.UserRef
		blogCountry, country  nullCountry
		viewer                nullUser
	)

	dest := []any{
		&v.ID, &viewedAt, &v.Duration,
		&v.Blog.ID, &v.Blog.Title, &blogCreated,
		&author.ID, &author.Username, &author.FirstName, &author.LastName,
	}
	dest = append(dest, blogCountry.dest()...)
	dest = append(dest, viewer.dest()...)
	dest = append(dest, country.dest()...)

	if err := rows.Scan(dest...); err != nil {
		return domain.ViewRecord{}, err
	}

	v.ViewedAt = viewedAt.UTC()
	v.Blog.CreatedAt = blogCreated.UTC()
	v.Blog.Author = &author
	v.Blog.Country = blogCountry.ref()
	v.User = viewer.ref()
	v.Country = country.ref()
	return v, nil
}
