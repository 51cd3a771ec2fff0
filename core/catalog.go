package core

import "fmt"

// ErrUnsupportedResource is wrapped by Catalog.Get for unknown resource names
var ErrUnsupportedResource = fmt.Errorf("unsupported resource")

// Catalog is a registry of resources. It is built once at startup and
// read-only afterwards; lookups are the single source of truth for schemas
// and pushdown rules.
type Catalog struct {
	resources     map[string]*Resource
	resourceOrder []string // Track registration order for consistent display
}

// NewCatalog creates an empty resource catalog
func NewCatalog() *Catalog {
	return &Catalog{
		resources:     make(map[string]*Resource),
		resourceOrder: make([]string, 0),
	}
}

// Register adds a resource to the catalog. Registering the same name twice
// replaces the earlier definition but keeps its display position.
func (c *Catalog) Register(resource *Resource) *Catalog {
	if _, exists := c.resources[resource.Name]; !exists {
		c.resourceOrder = append(c.resourceOrder, resource.Name)
	}
	c.resources[resource.Name] = resource
	return c
}

// Get retrieves a registered resource by collection name
func (c *Catalog) Get(name string) (*Resource, error) {
	if resource, exists := c.resources[name]; exists {
		return resource, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedResource, name)
}

// Resources returns all registered resources in registration order
func (c *Catalog) Resources() []*Resource {
	ordered := make([]*Resource, 0, len(c.resourceOrder))
	for _, name := range c.resourceOrder {
		if resource, exists := c.resources[name]; exists {
			ordered = append(ordered, resource)
		}
	}
	return ordered
}
