// Package catalog provides a read-only view over a template: canonical
// tag ordering, field definitions resolved once into a closed flat or
// structured shape, and sub-field navigation.
package catalog

import (
	"sort"
	"strconv"

	"github.com/acervolab/catalogagent/types"
)

// Definition is the unified view of a control or data field.
type Definition struct {
	Tag        string
	Name       string
	Control    bool
	Ind1       string
	Ind2       string
	Mandatory  bool
	Repeatable bool
	Subfields  []types.SubFieldDef
	Tips       []string
}

// Structured reports whether the field is a data field with sub-fields. A
// data field without sub-field definitions stores a flat value.
func (d Definition) Structured() bool {
	return !d.Control && len(d.Subfields) > 0
}

// FirstSubfield returns the first sub-field definition by position.
func (d Definition) FirstSubfield() (types.SubFieldDef, bool) {
	if len(d.Subfields) == 0 {
		return types.SubFieldDef{}, false
	}
	return d.Subfields[0], true
}

// NextSubfield returns the sub-field that follows code by position.
func (d Definition) NextSubfield(code string) (types.SubFieldDef, bool) {
	for i, sd := range d.Subfields {
		if sd.Code == code {
			if i+1 < len(d.Subfields) {
				return d.Subfields[i+1], true
			}
			return types.SubFieldDef{}, false
		}
	}
	return types.SubFieldDef{}, false
}

// Subfield returns the sub-field definition for code.
func (d Definition) Subfield(code string) (types.SubFieldDef, bool) {
	for _, sd := range d.Subfields {
		if sd.Code == code {
			return sd, true
		}
	}
	return types.SubFieldDef{}, false
}

// Catalog answers schema questions about a single template.
type Catalog struct {
	defs map[string]Definition
	tags []string
}

// New indexes the template's control and data fields. Duplicate tags keep
// the first definition seen.
func New(tpl *types.Template) *Catalog {
	c := &Catalog{defs: make(map[string]Definition)}
	for _, cf := range tpl.ControlFields {
		c.add(Definition{
			Tag:        cf.Tag,
			Name:       cf.Name,
			Control:    true,
			Mandatory:  cf.Mandatory,
			Repeatable: cf.Repeatable,
			Tips:       cf.Tips,
		})
	}
	for _, df := range tpl.DataFields {
		c.add(Definition{
			Tag:        df.Tag,
			Name:       df.Name,
			Ind1:       df.Ind1,
			Ind2:       df.Ind2,
			Mandatory:  df.Mandatory,
			Repeatable: df.Repeatable,
			Subfields:  df.SubFieldDef,
			Tips:       df.Tips,
		})
	}
	sort.Slice(c.tags, func(i, j int) bool {
		return tagLess(c.tags[i], c.tags[j])
	})
	return c
}

func (c *Catalog) add(d Definition) {
	if _, dup := c.defs[d.Tag]; dup {
		return
	}
	c.defs[d.Tag] = d
	c.tags = append(c.tags, d.Tag)
}

// tagLess orders tags numerically ascending; non-numeric tags sort after
// numeric ones, ties broken by natural string order.
func tagLess(a, b string) bool {
	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		if an != bn {
			return an < bn
		}
		return a < b
	case aerr == nil:
		return true
	case berr == nil:
		return false
	default:
		return a < b
	}
}

// AllTags returns every tag in canonical order.
func (c *Catalog) AllTags() []string {
	out := make([]string, len(c.tags))
	copy(out, c.tags)
	return out
}

// Definition looks up a field by tag.
func (c *Catalog) Definition(tag string) (Definition, bool) {
	d, ok := c.defs[tag]
	return d, ok
}
