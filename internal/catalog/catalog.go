package catalog

import (
	"fmt"
	"sort"
)

// Course describes a single purchasable course. PriceAmount is the display
// price in minor currency units and rides along as checkout metadata only;
// the authoritative charge amount is whatever the payment provider resolves
// ProviderPriceRef to.
type Course struct {
	ID               string
	DisplayName      string
	PriceAmount      int64
	ProviderPriceRef string
}

// Purchasable reports whether the course has a provider price reference
// configured. A missing reference is an operator mistake, not a caller error.
func (c *Course) Purchasable() bool {
	return c.ProviderPriceRef != ""
}

// Catalog is the read-only course catalog. It is built once at startup and
// never mutated afterwards, so it is safe for concurrent use.
type Catalog struct {
	courses map[string]*Course
	ids     []string
}

// PriceRefs maps course identifiers to provider price references, typically
// sourced from the environment.
type PriceRefs map[string]string

// New builds the catalog with the provider price references supplied by the
// operator. References for unknown course identifiers are ignored.
func New(refs PriceRefs) *Catalog {
	courses := map[string]*Course{
		"ai-fundamentals-self-paced": {
			ID:          "ai-fundamentals-self-paced",
			DisplayName: "AI Fundamentals - Self-Paced",
			PriceAmount: 497,
		},
		"ai-fundamentals-cohort": {
			ID:          "ai-fundamentals-cohort",
			DisplayName: "AI Fundamentals - Cohort-Based",
			PriceAmount: 997,
		},
		"business-leaders-executive": {
			ID:          "business-leaders-executive",
			DisplayName: "AI for Business Leaders - Executive Cohort",
			PriceAmount: 4997,
		},
		"business-leaders-team": {
			ID:          "business-leaders-team",
			DisplayName: "AI for Business Leaders - Team Package",
			PriceAmount: 12997,
		},
	}

	ids := make([]string, 0, len(courses))
	for id, course := range courses {
		course.ProviderPriceRef = refs[id]
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return &Catalog{courses: courses, ids: ids}
}

// Lookup returns the course for the given identifier.
func (c *Catalog) Lookup(id string) (*Course, bool) {
	course, ok := c.courses[id]
	return course, ok
}

// IDs returns the sorted set of valid course identifiers.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Validate checks that every course carries a provider price reference.
// The service can still start without them; checkout for the affected course
// fails with a configuration error instead.
func (c *Catalog) Validate() error {
	for _, id := range c.ids {
		if !c.courses[id].Purchasable() {
			return fmt.Errorf("course %q has no provider price reference configured", id)
		}
	}
	return nil
}
