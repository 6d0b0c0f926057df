// Package models defines the domain types for Ansuz.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// FrontmatterKind discriminates the two value shapes a frontmatter key can hold.
type FrontmatterKind int

const (
	// FrontmatterString is a scalar value, quotes already stripped.
	FrontmatterString FrontmatterKind = iota
	// FrontmatterList is an ordered sequence of strings parsed from a [...] value.
	FrontmatterList
)

// FrontmatterValue is a tagged variant: either a scalar string or a list of
// strings. Frontmatter keys in vault notes are dynamically shaped, so keys
// map to this type rather than to interface{}.
type FrontmatterValue struct {
	Kind FrontmatterKind
	Str  string
	List []string
}

// StringValue wraps a scalar into a FrontmatterValue.
func StringValue(s string) FrontmatterValue {
	return FrontmatterValue{Kind: FrontmatterString, Str: s}
}

// ListValue wraps a sequence into a FrontmatterValue.
func ListValue(items []string) FrontmatterValue {
	return FrontmatterValue{Kind: FrontmatterList, List: items}
}

// MarshalJSON emits the scalar as a JSON string and the list as a JSON array.
func (v FrontmatterValue) MarshalJSON() ([]byte, error) {
	if v.Kind == FrontmatterList {
		return json.Marshal(v.List)
	}
	return json.Marshal(v.Str)
}

// UnmarshalJSON accepts either a JSON string or a JSON array of strings.
func (v *FrontmatterValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = StringValue(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*v = ListValue(list)
		return nil
	}
	return fmt.Errorf("frontmatter value must be a string or an array of strings")
}

// Note is the parsed structure of a single Markdown file. It is derived
// fresh from storage on every operation; nothing caches it between calls.
type Note struct {
	Path        string                      `json:"path"`
	Title       string                      `json:"title"`
	Frontmatter map[string]FrontmatterValue `json:"frontmatter,omitempty"`
	Tags        []string                    `json:"tags"`
}

// NoteStat is the file metadata the engines attach to results.
type NoteStat struct {
	ModTime time.Time
	Size    int64
}
