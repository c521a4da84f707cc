package hal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder(t *testing.T) Builder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "http://market.example.com/froot-boot/api/v1/members", nil)
	return NewBuilder(req, "/froot-boot/api/v1/members")
}

func TestNewBuilder_SchemeAndHost(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "http://market.example.com/froot-boot/api/v1/members", nil)
	b := NewBuilder(req, "/froot-boot/api/v1/members")
	assert.Equal(t, "http://market.example.com/froot-boot/api/v1/members", b.Base())

	req.Header.Set("X-Forwarded-Proto", "https")
	b = NewBuilder(req, "/froot-boot/api/v1/members")
	assert.Equal(t, "https://market.example.com/froot-boot/api/v1/members", b.Base())
}

func TestBuilder_Links(t *testing.T) {
	t.Parallel()

	b := newBuilder(t)
	base := "http://market.example.com/froot-boot/api/v1/members"

	tests := []struct {
		name   string
		link   Link
		href   string
		method string
	}{
		{"base url", b.BaseURL(), base, http.MethodGet},
		{"plain resource", b.PlainResource("abc"), base + "/abc", ""},
		{"resource by id", b.ResourceByID("abc", "Member1"), base + "/abc", http.MethodGet},
		{"resource by name", b.ResourceByName("tulum"), base + "/tulum", http.MethodGet},
		{"nested", b.NestedResource("abc", "farms"), base + "/abc/farms", http.MethodGet},
		{"nested by id", b.NestedResourceByID("abc", "farms", "f1"), base + "/abc/farms/f1", http.MethodGet},
		{"double nested", b.DoubleNestedResource("abc", "farms", "f1", "products"), base + "/abc/farms/f1/products", http.MethodGet},
		{"double nested by id", b.DoubleNestedResourceByID("abc", "farms", "f1", "products", "p1"), base + "/abc/farms/f1/products/p1", http.MethodGet},
		{"create", b.Create(), base, http.MethodPost},
		{"create nested", b.CreateNested("abc", "farms"), base + "/abc/farms", http.MethodPost},
		{"update", b.Update("abc", "Member1"), base + "/abc", http.MethodPut},
		{"update by name", b.UpdateByName("tulum"), base + "/tulum", http.MethodPut},
		{"delete", b.Delete("abc", "Member1"), base + "/abc", http.MethodDelete},
		{"delete by name", b.DeleteByName("tulum"), base + "/tulum", http.MethodDelete},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.href, tc.link.Href)
			assert.Equal(t, tc.method, tc.link.Method)
		})
	}
}

func TestBuilder_Deterministic(t *testing.T) {
	t.Parallel()

	b := newBuilder(t)
	require.Equal(t, b.ResourceByID("abc", "x"), b.ResourceByID("abc", "x"))
	require.Equal(t, b.PageURL(2, 5), b.PageURL(2, 5))
}

func TestBuilder_PageURL(t *testing.T) {
	t.Parallel()

	b := newBuilder(t)
	assert.Equal(t, "http://market.example.com/froot-boot/api/v1/members?page=3&perPage=5", b.PageURL(3, 5))
}

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Tulum", "tulum"},
		{"Mexico City", "mexico-city"},
		{"  Puerto  Escondido ", "puerto--escondido"},
		{"", ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, Slug(tc.in), "Slug(%q)", tc.in)
	}
}
