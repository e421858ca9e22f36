package upstream

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Datum is one typed metadata fact: a field, a value matching that
// field's shape, and optional certainty and origin annotations.
//
// Construct datums with NewDatum (validating, for dynamic input) or with
// the shape-specific constructors NewText, NewList and NewPeople (for
// field/value pairs known to agree at the call site). A zero Datum is
// invalid and must not be stored.
type Datum struct {
	Field     Field
	Certainty Certainty
	Origin    Origin

	text   string
	list   []string
	people []Person
}

// NewDatum builds a datum from a raw field name and value, validating
// both against the schema. The value must match the field's shape:
// string for text fields, []string for list fields, and Person, []Person
// or their string notations for person fields. As a compatibility quirk,
// a []string for the Repository field is joined with spaces.
func NewDatum(field string, value any) (Datum, error) {
	f, err := ParseField(field)
	if err != nil {
		return Datum{}, err
	}
	switch f.Shape() {
	case ShapeList:
		parts, ok := toStringList(value)
		if !ok {
			return Datum{}, shapeErr(f, value)
		}
		return Datum{Field: f, list: parts}, nil
	case ShapePersonList:
		people, ok := toPersonList(value)
		if !ok {
			return Datum{}, shapeErr(f, value)
		}
		return Datum{Field: f, people: people}, nil
	default:
		if s, ok := value.(string); ok {
			return Datum{Field: f, text: s}, nil
		}
		if parts, ok := toStringList(value); ok && f == FieldRepository {
			return Datum{Field: f, text: strings.Join(parts, " ")}, nil
		}
		return Datum{}, shapeErr(f, value)
	}
}

func shapeErr(f Field, value any) error {
	return fmt.Errorf("%w: field %s wants %s, got %T", ErrValueShape, f, f.Shape(), value)
}

func toStringList(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func toPersonList(value any) ([]Person, bool) {
	switch v := value.(type) {
	case Person:
		return []Person{v}, true
	case []Person:
		return v, true
	case string:
		return []Person{ParsePerson(v)}, true
	case []string:
		out := make([]Person, 0, len(v))
		for _, s := range v {
			out = append(out, ParsePerson(s))
		}
		return out, true
	}
	return nil, false
}

// NewText builds a text datum. The field must be text-shaped; passing a
// list or person field is a programming error and panics.
func NewText(f Field, value string) Datum {
	mustShape(f, ShapeText)
	return Datum{Field: f, text: value}
}

// NewList builds a list datum for a list-shaped field.
func NewList(f Field, values []string) Datum {
	mustShape(f, ShapeList)
	return Datum{Field: f, list: values}
}

// NewPeople builds a person-list datum for a person-shaped field.
func NewPeople(f Field, people []Person) Datum {
	mustShape(f, ShapePersonList)
	return Datum{Field: f, people: people}
}

func mustShape(f Field, want Shape) {
	if !f.Known() {
		panic(fmt.Sprintf("upstream: unknown field %q", string(f)))
	}
	if f.Shape() != want {
		panic(fmt.Sprintf("upstream: field %s is %s-shaped, not %s", f, f.Shape(), want))
	}
}

// With returns a copy of d annotated with the given certainty and origin.
func (d Datum) With(c Certainty, o Origin) Datum {
	d.Certainty = c
	d.Origin = o
	return d
}

// Text returns the value of a text-shaped datum, or "" otherwise.
func (d Datum) Text() string { return d.text }

// List returns the value of a list-shaped datum, or nil otherwise.
func (d Datum) List() []string { return d.list }

// People returns the value of a person-shaped datum, or nil otherwise.
func (d Datum) People() []Person { return d.people }

// Value returns the datum's value in its natural Go form: string,
// []string or []Person depending on the field's shape.
func (d Datum) Value() any {
	switch d.Field.Shape() {
	case ShapeList:
		return d.list
	case ShapePersonList:
		return d.people
	default:
		return d.text
	}
}

// SameValue reports whether o carries the same field and value as d,
// ignoring certainty and origin.
func (d Datum) SameValue(o Datum) bool {
	if d.Field != o.Field {
		return false
	}
	return d.text == o.text && slices.Equal(d.list, o.list) && slices.Equal(d.people, o.people)
}

// String renders the value for display.
func (d Datum) String() string {
	switch d.Field.Shape() {
	case ShapeList:
		return strings.Join(d.list, ", ")
	case ShapePersonList:
		parts := make([]string, len(d.people))
		for i, p := range d.people {
			parts[i] = p.String()
		}
		return strings.Join(parts, ", ")
	default:
		return d.text
	}
}

// datumJSON is the wire form used by the HTTP facade and --json output.
type datumJSON struct {
	Field     string `json:"field"`
	Value     any    `json:"value"`
	Certainty string `json:"certainty,omitempty"`
	Origin    string `json:"origin,omitempty"`
}

// MarshalJSON encodes the datum as {field, value, certainty, origin}.
func (d Datum) MarshalJSON() ([]byte, error) {
	return json.Marshal(datumJSON{
		Field:     string(d.Field),
		Value:     d.Value(),
		Certainty: d.Certainty.String(),
		Origin:    d.Origin.String(),
	})
}
