package pagination

import (
	"io"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParams(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		want        Params
	}{
		{"defaults", 0, 0, Params{Page: 1, Limit: DefaultLimit, Offset: 0}},
		{"negative page", -4, 10, Params{Page: 1, Limit: 10, Offset: 0}},
		{"third page", 3, 10, Params{Page: 3, Limit: 10, Offset: 20}},
		{"limit capped", 2, 1000, Params{Page: 2, Limit: MaxLimit, Offset: MaxLimit}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, *NewParams(tt.page, tt.limit))
		})
	}
}

func TestNewParams_HugePage(t *testing.T) {
	p := NewParams(4611686018427387904, 20)
	assert.GreaterOrEqual(t, p.Offset, 0)
	assert.GreaterOrEqual(t, p.Offset+p.Limit, p.Offset)
}

func TestGetParams(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		p := GetParams(c)
		return c.SendString(strconv.Itoa(p.Page) + "/" + strconv.Itoa(p.Limit))
	})

	for query, want := range map[string]string{
		"":                  "1/20",
		"?page=abc":         "1/20",
		"?page=0&limit=5":   "1/5",
		"?page=2&limit=500": "2/100",
	} {
		resp, err := app.Test(httptest.NewRequest("GET", "/"+query, nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, want, string(body), query)
	}
}

// The last page holds N mod P items (or P when N divides evenly) and every
// page reports the full count.
func TestLastPage(t *testing.T) {
	for _, n := range []int{1, 7, 20, 21, 99, 100, 101} {
		for _, p := range []int{1, 5, 20, 100} {
			items := make([]int, n)
			pages := TotalPages(int64(n), p)
			params := NewParams(pages, p)

			end := min(params.Offset+params.Limit, n)
			page := NewPage(items[params.Offset:end], params, int64(n))

			want := n % p
			if want == 0 {
				want = p
			}
			assert.Len(t, page.Items, want, "n=%d p=%d", n, p)
			assert.Equal(t, int64(n), page.TotalCount)
			assert.Equal(t, pages, page.TotalPages)
		}
	}
}

func TestNewPage_EmptyItems(t *testing.T) {
	page := NewPage[string](nil, NewParams(1, 20), 0)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
}
