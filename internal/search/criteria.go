package search

// TagOperator selects how multiple required tags combine.
type TagOperator string

// Tag combination modes.
const (
	TagOperatorAND TagOperator = "AND"
	TagOperatorOR  TagOperator = "OR"
)

// Field identifies a searchable note field.
type Field string

// Searchable fields. FieldAll widens the query scope to every field;
// FieldTags only ever appears in matched-fields output.
const (
	FieldFilename Field = "filename"
	FieldTitle    Field = "title"
	FieldContent  Field = "content"
	FieldAll      Field = "all"
	FieldTags     Field = "tags"
)

// Pagination defaults.
const (
	DefaultSearchLimit = 10
	DefaultListLimit   = 50
)

// Criteria describes a single search request. The zero value searches the
// whole vault with no filters.
type Criteria struct {
	Query          string      `json:"query,omitempty"`
	Tags           []string    `json:"tags,omitempty"`
	TagOperator    TagOperator `json:"tagOperator,omitempty"`
	Folder         string      `json:"folder,omitempty"`
	SearchIn       Field       `json:"searchIn,omitempty"`
	Regex          string      `json:"regex,omitempty"`
	IncludeContent bool        `json:"includeContent,omitempty"`
	Limit          int         `json:"limit,omitempty"`
	Offset         int         `json:"offset,omitempty"`
}

func (c *Criteria) normalize() {
	if c.Limit <= 0 {
		c.Limit = DefaultSearchLimit
	}
	if c.Offset < 0 {
		c.Offset = 0
	}
	if c.SearchIn == "" {
		c.SearchIn = FieldContent
	}
	if c.TagOperator == "" {
		c.TagOperator = TagOperatorAND
	}
}

// scopeHas reports whether the query should be tested against field.
func (c *Criteria) scopeHas(field Field) bool {
	return c.SearchIn == FieldAll || c.SearchIn == field
}
