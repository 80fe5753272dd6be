package people

import (
	"fmt"

	"github.com/emberesports/crewdesk/pkg/core/model"
)

// Directory resolves person ids to roster entries. It is read-only once built.
type Directory struct {
	byID  map[model.PersonID]model.Person
	order []model.PersonID
}

// NewDirectory indexes the given rosters in order. When an id appears more than
// once the later entry replaces the earlier one but keeps its position.
func NewDirectory(rosters ...[]model.Person) *Directory {
	d := &Directory{byID: make(map[model.PersonID]model.Person)}
	for _, roster := range rosters {
		for _, p := range roster {
			if _, exists := d.byID[p.ID]; !exists {
				d.order = append(d.order, p.ID)
			}
			d.byID[p.ID] = p
		}
	}
	return d
}

// Placeholder is the stable label for a person the roster does not know
func Placeholder(id model.PersonID) string {
	return fmt.Sprintf("User #%d", id)
}

func (d *Directory) Lookup(id model.PersonID) (model.Person, bool) {
	if d == nil {
		return model.Person{}, false
	}
	p, ok := d.byID[id]
	return p, ok
}

// DisplayName never fails; unknown or unnamed people render as Placeholder
func (d *Directory) DisplayName(id model.PersonID) string {
	if p, ok := d.Lookup(id); ok && p.Name != "" {
		return p.Name
	}
	return Placeholder(id)
}

// Label renders a workflow reference, appending the caster style when present
func (d *Directory) Label(ref model.PersonRef) string {
	name := d.DisplayName(ref.ID)
	if ref.Style != "" {
		return name + " (" + ref.Style + ")"
	}
	return name
}

// Email returns the roster email of a person, if any
func (d *Directory) Email(id model.PersonID) (string, bool) {
	p, ok := d.Lookup(id)
	if !ok || p.Email == "" {
		return "", false
	}
	return p.Email, true
}

// All returns every person in roster order
func (d *Directory) All() []model.Person {
	if d == nil {
		return nil
	}
	out := make([]model.Person, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.byID[id])
	}
	return out
}

func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.order)
}
