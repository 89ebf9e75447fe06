package fiber

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type PaginationConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// page is a limit/offset window over count items.
type page struct {
	Limit  int
	Offset int
	Count  int
}

// parsePage reads limit and offset. A missing, non-numeric or non-positive
// limit falls back to the default and is capped at the maximum; a bad offset
// becomes 0.
func parsePage(c *fiber.Ctx, cfg PaginationConfig) page {
	p := page{Limit: cfg.DefaultLimit}

	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 {
		p.Limit = n
	}
	if cfg.MaxLimit > 0 && p.Limit > cfg.MaxLimit {
		p.Limit = cfg.MaxLimit
	}
	if n, err := strconv.Atoi(c.Query("offset")); err == nil && n > 0 {
		p.Offset = n
	}
	return p
}

// window returns the [start, end) bounds of the page within count items.
func (p page) window(count int) (int, int) {
	if count == 0 || p.Offset > count {
		return 0, 0
	}
	return p.Offset, min(p.Offset+p.Limit, count)
}

func (p page) next(c *fiber.Ctx) *string {
	if p.Offset+p.Limit >= p.Count {
		return nil
	}
	link := pageLink(c, p.Limit, p.Offset+p.Limit, false)
	return &link
}

func (p page) previous(c *fiber.Ctx) *string {
	if p.Offset <= 0 {
		return nil
	}
	if p.Offset-p.Limit <= 0 {
		link := pageLink(c, p.Limit, 0, true)
		return &link
	}
	link := pageLink(c, p.Limit, p.Offset-p.Limit, false)
	return &link
}

// pageLink rewrites the request URI with the given limit and offset.
func pageLink(c *fiber.Ctx, limit, offset int, dropOffset bool) string {
	uri := fasthttp.AcquireURI()
	defer fasthttp.ReleaseURI(uri)

	c.Request().URI().CopyTo(uri)
	args := uri.QueryArgs()
	args.Set("limit", strconv.Itoa(limit))
	if dropOffset {
		args.Del("offset")
	} else {
		args.Set("offset", strconv.Itoa(offset))
	}
	return uri.String()
}
