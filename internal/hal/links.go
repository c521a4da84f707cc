// Package hal builds hypermedia link descriptors for HAL-style responses.
// All functions are pure: links are derived from the request's scheme,
// host and the mounted base path, with no I/O and no request mutation.
package hal

import (
	"fmt"
	"net/http"
	"strings"
)

// Link is one hypermedia link descriptor.
type Link struct {
	Href        string `json:"href"`
	Method      string `json:"method,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Builder constructs links rooted at one resource collection URL,
// e.g. https://host/froot-boot/api/v1/members.
type Builder struct {
	base string
}

// NewBuilder derives a Builder from the current request and the mounted
// path of the resource collection.
func NewBuilder(r *http.Request, basePath string) Builder {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return Builder{base: scheme + "://" + r.Host + basePath}
}

// NewBuilderFromBase constructs a Builder directly from an absolute
// collection URL.
func NewBuilderFromBase(base string) Builder {
	return Builder{base: strings.TrimSuffix(base, "/")}
}

// Base returns the collection URL the builder is rooted at.
func (b Builder) Base() string {
	return b.base
}

func (b Builder) join(segments ...string) string {
	if len(segments) == 0 {
		return b.base
	}
	return b.base + "/" + strings.Join(segments, "/")
}

// BaseURL links the whole collection.
func (b Builder) BaseURL() Link {
	return Link{Href: b.base, Method: http.MethodGet, Title: "Get ALL resources"}
}

// PlainResource is a bare self href for one resource.
func (b Builder) PlainResource(id string) Link {
	return Link{Href: b.join(id)}
}

// ResourceByID links one resource by its id.
func (b Builder) ResourceByID(id, name string) Link {
	return Link{
		Href:        b.join(id),
		Method:      http.MethodGet,
		Title:       "Get resource by ID",
		Description: fmt.Sprintf("The requested resource %s", name),
	}
}

// ResourceByName links one resource by its url name (slug).
func (b Builder) ResourceByName(urlName string) Link {
	return Link{Href: b.join(urlName), Method: http.MethodGet, Title: "Gets a specific resource"}
}

// NestedResource links a resource's nested collection,
// e.g. /members/:id/farms.
func (b Builder) NestedResource(id, nested string) Link {
	return Link{
		Href:        b.join(id, nested),
		Method:      http.MethodGet,
		Title:       "Get nested resource",
		Description: "Gets ALL instances of the last nested resource in the url",
	}
}

// NestedResourceByName links a nested collection under a slug-addressed
// resource, e.g. /locations/:slug/members.
func (b Builder) NestedResourceByName(urlName, nested string) Link {
	return Link{
		Href:        b.join(urlName, nested),
		Method:      http.MethodGet,
		Title:       "Get nested resource",
		Description: "Gets ALL instances of the last nested resource in the url",
	}
}

// NestedResourceByID links one instance of a nested resource,
// e.g. /members/:id/farms/:farmId.
func (b Builder) NestedResourceByID(id, nested, nestedID string) Link {
	return Link{
		Href:        b.join(id, nested, nestedID),
		Method:      http.MethodGet,
		Title:       "An instance of the nested resource",
		Description: "Gets an instance of the last nested resource in the url, by its ID",
	}
}

// DoubleNestedResource links a twice-nested collection,
// e.g. /members/:id/farms/:farmId/products.
func (b Builder) DoubleNestedResource(id, nested, nestedID, doubleNested string) Link {
	return Link{
		Href:        b.join(id, nested, nestedID, doubleNested),
		Method:      http.MethodGet,
		Title:       "Get nested resource",
		Description: "Gets ALL instances of the last nested resource in the url",
	}
}

// DoubleNestedResourceByID links one instance of a twice-nested resource,
// e.g. /members/:id/farms/:farmId/products/:productId.
func (b Builder) DoubleNestedResourceByID(id, nested, nestedID, doubleNested, doubleNestedID string) Link {
	return Link{
		Href:        b.join(id, nested, nestedID, doubleNested, doubleNestedID),
		Method:      http.MethodGet,
		Title:       "An instance of the nested resource",
		Description: "Gets an instance of the last nested resource in the url, by its ID",
	}
}

// Create links resource creation on the collection.
func (b Builder) Create() Link {
	return Link{Href: b.base, Method: http.MethodPost, Title: "Create a new resource"}
}

// CreateNested links creation on a nested collection.
func (b Builder) CreateNested(segments ...string) Link {
	return Link{Href: b.join(segments...), Method: http.MethodPost, Title: "Create a new resource"}
}

// Update links a full replace of one resource.
func (b Builder) Update(id, name string) Link {
	return Link{
		Href:        b.join(id),
		Method:      http.MethodPut,
		Title:       fmt.Sprintf("Update the resource %s", name),
		Description: fmt.Sprintf("Update the resource %s with ID %s", name, id),
	}
}

// UpdateByName links a full replace of a slug-addressed resource.
func (b Builder) UpdateByName(urlName string) Link {
	return Link{Href: b.join(urlName), Method: http.MethodPut, Title: "Update the resource"}
}

// UpdateNested links a full replace of a nested resource.
func (b Builder) UpdateNested(name string, segments ...string) Link {
	return Link{
		Href:   b.join(segments...),
		Method: http.MethodPut,
		Title:  fmt.Sprintf("Update the resource %s", name),
	}
}

// Delete links removal of one resource.
func (b Builder) Delete(id, name string) Link {
	return Link{
		Href:        b.join(id),
		Method:      http.MethodDelete,
		Title:       fmt.Sprintf("Delete the resource %s", name),
		Description: fmt.Sprintf("Delete the resource %s with ID %s", name, id),
	}
}

// DeleteByName links removal of a slug-addressed resource.
func (b Builder) DeleteByName(urlName string) Link {
	return Link{Href: b.join(urlName), Method: http.MethodDelete, Title: "Delete the resource"}
}

// DeleteNested links removal of a nested resource.
func (b Builder) DeleteNested(name string, segments ...string) Link {
	return Link{
		Href:   b.join(segments...),
		Method: http.MethodDelete,
		Title:  fmt.Sprintf("Delete the resource %s", name),
	}
}

// PageURL builds a pagination URL for the collection.
func (b Builder) PageURL(page, perPage int64) string {
	return fmt.Sprintf("%s?page=%d&perPage=%d", b.base, page, perPage)
}
