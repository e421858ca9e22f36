package upstream

import (
	"errors"
	"fmt"
)

// Sentinel errors for datum construction.
var (
	// ErrUnknownField is returned when a field name is not part of the schema.
	ErrUnknownField = errors.New("unknown field")

	// ErrValueShape is returned when a value does not match the field's shape.
	ErrValueShape = errors.New("value does not match field shape")
)

// Field identifies one metadata field of an upstream project.
// The set of fields is closed; see Fields for the full list.
type Field string

// The full field schema. Field names are part of the wire contract and
// match the headers used by packaging metadata formats.
const (
	FieldName               Field = "Name"
	FieldVersion            Field = "Version"
	FieldSummary            Field = "Summary"
	FieldDescription        Field = "Description"
	FieldHomepage           Field = "Homepage"
	FieldRepository         Field = "Repository"
	FieldRepositoryBrowse   Field = "Repository-Browse"
	FieldLicense            Field = "License"
	FieldAuthor             Field = "Author"
	FieldBugDatabase        Field = "Bug-Database"
	FieldBugSubmit          Field = "Bug-Submit"
	FieldContact            Field = "Contact"
	FieldCargoCrate         Field = "Cargo-Crate"
	FieldSecurityMD         Field = "Security-MD"
	FieldSecurityContact    Field = "Security-Contact"
	FieldKeywords           Field = "Keywords"
	FieldMaintainer         Field = "Maintainer"
	FieldCopyright          Field = "Copyright"
	FieldDocumentation      Field = "Documentation"
	FieldGoImportPath       Field = "Go-Import-Path"
	FieldDownload           Field = "Download"
	FieldWiki               Field = "Wiki"
	FieldMailingList        Field = "MailingList"
	FieldSourceForgeProject Field = "SourceForge-Project"
	FieldArchive            Field = "Archive"
	FieldDemo               Field = "Demo"
	FieldPeclPackage        Field = "Pecl-Package"
	FieldHaskellPackage     Field = "Haskell-Package"
	FieldFunding            Field = "Funding"
	FieldChangelog          Field = "Changelog"
	FieldDebianITP          Field = "Debian-ITP"
	FieldScreenshots        Field = "Screenshots"
	FieldCiteAs             Field = "Cite-As"
	FieldRegistry           Field = "Registry"
	FieldDonation           Field = "Donation"
	FieldWebservice         Field = "Webservice"
	FieldFAQ                Field = "FAQ"
)

// Shape describes the value shape a field accepts.
type Shape int

const (
	// ShapeText is a single free-form string.
	ShapeText Shape = iota
	// ShapeList is an ordered list of strings.
	ShapeList
	// ShapePersonList is a list of person/contact records.
	ShapePersonList
)

// String returns a human-readable shape name.
func (s Shape) String() string {
	switch s {
	case ShapeText:
		return "text"
	case ShapeList:
		return "list"
	case ShapePersonList:
		return "person-list"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// fieldOrder is the declaration order of the schema, used for
// deterministic iteration when a caller asks for it.
var fieldOrder = []Field{
	FieldName, FieldVersion, FieldSummary, FieldDescription,
	FieldHomepage, FieldRepository, FieldRepositoryBrowse, FieldLicense,
	FieldAuthor, FieldBugDatabase, FieldBugSubmit, FieldContact,
	FieldCargoCrate, FieldSecurityMD, FieldSecurityContact, FieldKeywords,
	FieldMaintainer, FieldCopyright, FieldDocumentation, FieldGoImportPath,
	FieldDownload, FieldWiki, FieldMailingList, FieldSourceForgeProject,
	FieldArchive, FieldDemo, FieldPeclPackage, FieldHaskellPackage,
	FieldFunding, FieldChangelog, FieldDebianITP, FieldScreenshots,
	FieldCiteAs, FieldRegistry, FieldDonation, FieldWebservice, FieldFAQ,
}

// fieldShapes maps every known field to its value shape. Fields not
// listed here default to ShapeText; the map only carries the exceptions.
var fieldShapes = map[Field]Shape{
	FieldAuthor:        ShapePersonList,
	FieldMaintainer:    ShapePersonList,
	FieldKeywords:      ShapeList,
	FieldCopyright:     ShapeList,
	FieldDocumentation: ShapeList,
	FieldScreenshots:   ShapeList,
}

var knownFields = func() map[Field]bool {
	m := make(map[Field]bool, len(fieldOrder))
	for _, f := range fieldOrder {
		m[f] = true
	}
	return m
}()

// Fields returns all known fields in declaration order.
// The returned slice is a copy and safe to modify.
func Fields() []Field {
	out := make([]Field, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// Known reports whether f is part of the schema.
func (f Field) Known() bool { return knownFields[f] }

// Shape returns the value shape for f. Calling Shape on an unknown
// field returns ShapeText; check Known first when it matters.
func (f Field) Shape() Shape { return fieldShapes[f] }

// ParseField validates a field name against the schema.
func ParseField(name string) (Field, error) {
	f := Field(name)
	if !f.Known() {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f, nil
}

// fieldRank returns the declaration index of f, for sorted iteration.
var fieldRank = func() map[Field]int {
	m := make(map[Field]int, len(fieldOrder))
	for i, f := range fieldOrder {
		m[f] = i
	}
	return m
}()
