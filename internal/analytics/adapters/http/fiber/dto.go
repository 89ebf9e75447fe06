package fiber

import (
	"time"

	"blog-analytics-service/internal/analytics/core/aggregate"
	"blog-analytics-service/internal/analytics/core/domain"
)

// RowResponse is the {x, y, z} row shared by the three analytics endpoints.
// Grouped and top rows: x label, y distinct blogs, z views. Blog ranking: x
// title, author, z views. Performance: x period label, y views, z growth %.
type RowResponse struct {
	X      string  `json:"x" example:"Germany"`
	Y      *int64  `json:"y,omitempty" example:"12"`
	Z      float64 `json:"z" example:"340"`
	Author string  `json:"author,omitempty" example:"jdoe"`
}

type BlogViewsResponse struct {
	Count      int           `json:"count" example:"123"`
	Next       *string       `json:"next" example:"http://api.example.com/analytics/blog-views/?limit=100&offset=100"`
	Previous   *string       `json:"previous"`
	Limit      int           `json:"limit" example:"100"`
	Offset     int           `json:"offset" example:"0"`
	ObjectType string        `json:"object_type" example:"country"`
	Range      string        `json:"range" example:"month"`
	Data       []RowResponse `json:"data"`
}

type BlogViewsNotFoundResponse struct {
	ObjectType string        `json:"object_type" example:"country"`
	Range      string        `json:"range" example:"week"`
	Data       []RowResponse `json:"data"`
	Message    string        `json:"message" example:"No data found for the specified criteria"`
}

type TopResponse struct {
	TopType string        `json:"top_type" example:"user"`
	Data    []RowResponse `json:"data"`
}

type PerformanceResponse struct {
	Compare string        `json:"compare" example:"month"`
	UserID  *int64        `json:"user_id"`
	Data    []RowResponse `json:"data"`
}

type PerformanceNotFoundResponse struct {
	Compare string        `json:"compare" example:"month"`
	UserID  *int64        `json:"user_id"`
	Data    []RowResponse `json:"data"`
	Message string        `json:"message" example:"No performance data found for the specified criteria"`
}

type UserResponse struct {
	ID        int64  `json:"id" example:"7"`
	Username  string `json:"username" example:"jdoe"`
	FirstName string `json:"first_name" example:"Jane"`
	LastName  string `json:"last_name" example:"Doe"`
}

type CountryResponse struct {
	ID   int64  `json:"id" example:"3"`
	Name string `json:"name" example:"Germany"`
	Code string `json:"code" example:"DE"`
}

type BlogResponse struct {
	ID        int64            `json:"id" example:"42"`
	Title     string           `json:"title" example:"Understanding Go generics"`
	CreatedAt time.Time        `json:"created_at"`
	Author    *UserResponse    `json:"author"`
	Country   *CountryResponse `json:"country"`
}

type ViewResponse struct {
	ID       int64            `json:"id" example:"1001"`
	Blog     BlogResponse     `json:"blog"`
	User     *UserResponse    `json:"user"`
	Country  *CountryResponse `json:"country"`
	ViewedAt time.Time        `json:"viewed_at"`
	Duration int              `json:"duration" example:"35"`
}

type ViewsResponse struct {
	Count    int            `json:"count" example:"2500"`
	Next     *string        `json:"next"`
	Previous *string        `json:"previous"`
	Limit    int            `json:"limit" example:"100"`
	Offset   int            `json:"offset" example:"0"`
	Data     []ViewResponse `json:"data"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"Invalid object_type: blog. Must be 'country' or 'user'"`
	Code  string `json:"code" example:"invalid_filter"`
}

type InternalErrorResponse struct {
	Error  string  `json:"error" example:"Internal server error"`
	Detail *string `json:"detail"`
	Code   string  `json:"code" example:"internal_error"`
}

type HealthResponse struct {
	Status     string            `json:"status" example:"healthy"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components"`
}

func groupedRows(rows []domain.GroupedRow) []RowResponse {
	out := make([]RowResponse, 0, len(rows))
	for _, r := range rows {
		blogs := r.Blogs
		out = append(out, RowResponse{X: r.Label, Y: &blogs, Z: float64(r.Views)})
	}
	return out
}

func topRows(rows []domain.TopRow) []RowResponse {
	out := make([]RowResponse, 0, len(rows))
	for _, r := range rows {
		row := RowResponse{X: r.Label, Z: float64(r.Views)}
		if r.Kind == domain.TopByBlog {
			row.Author = r.Author
		} else {
			blogs := r.Blogs
			row.Y = &blogs
		}
		out = append(out, row)
	}
	return out
}

func performanceRows(rows []domain.PerformanceRow) []RowResponse {
	out := make([]RowResponse, 0, len(rows))
	for _, r := range rows {
		views := r.Views
		out = append(out, RowResponse{X: aggregate.Label(r), Y: &views, Z: r.Growth})
	}
	return out
}

func userResponse(u *domain.UserRef) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{ID: u.ID, Username: u.Username, FirstName: u.FirstName, LastName: u.LastName}
}

func countryResponse(c *domain.CountryRef) *CountryResponse {
	if c == nil {
		return nil
	}
	return &CountryResponse{ID: c.ID, Name: c.Name, Code: c.Code}
}

func viewResponses(views []domain.ViewRecord) []ViewResponse {
	out := make([]ViewResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ViewResponse{
			ID: v.ID,
			Blog: BlogResponse{
				ID:        v.Blog.ID,
				Title:     v.Blog.Title,
				CreatedAt: v.Blog.CreatedAt,
				Author:    userResponse(v.Blog.Author),
				Country:   countryResponse(v.Blog.Country),
			},
			User:     userResponse(v.User),
			Country:  countryResponse(v.Country),
			ViewedAt: v.ViewedAt,
			Duration: v.Duration,
		})
	}
	return out
}
