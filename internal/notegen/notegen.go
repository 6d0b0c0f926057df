// Package notegen formats conversation notes: frontmatter generation,
// filename sanitization, and the styled Markdown body. Everything here is
// pure string formatting; storage is the caller's concern.
package notegen

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultFolder is where conversation notes land when none is given.
const DefaultFolder = "MCP Notes"

// maxTopicLength caps the sanitized topic used in filenames.
const maxTopicLength = 100

// Style selects the body shape of a conversation note.
type Style string

// Body styles. StyleDetailed is the default.
const (
	StyleConcise  Style = "concise"
	StyleDetailed Style = "detailed"
	StyleSimple   Style = "simple"
)

// fixedTags are always appended to the frontmatter tag list.
var fixedTags = []string{"mcp", "conversation"}

var (
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRuns       = regexp.MustCompile(`\s+`)
)

// NoteParams are the inputs for a conversation note.
type NoteParams struct {
	Topic      string   `json:"topic"`
	Highlights []string `json:"highlights"`
	Tags       []string `json:"tags,omitempty"`
	Folder     string   `json:"folder,omitempty"`
	Style      Style    `json:"style,omitempty"`
}

// SanitizeTopic strips filename-hostile characters, collapses whitespace
// runs, trims, and truncates to maxTopicLength characters.
func SanitizeTopic(topic string) string {
	s := invalidFilenameChars.ReplaceAllString(topic, "")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > maxTopicLength {
		s = string(runes[:maxTopicLength])
	}
	return s
}

// Filename builds "<ISO-date> - <sanitized topic>.md".
func Filename(topic string, date time.Time) string {
	return fmt.Sprintf("%s - %s.md", date.Format("2006-01-02"), SanitizeTopic(topic))
}

// ConversationNote renders the full Markdown note: frontmatter block
// followed by the styled body.
func ConversationNote(p NoteParams, date time.Time) string {
	var b strings.Builder
	b.WriteString(frontmatter(date, p.Style, p.Tags))
	b.WriteString("\n")
	b.WriteString(body(p))
	return b.String()
}

// frontmatter serializes the metadata block: quoted scalars, bracketed
// comma-joined quoted arrays.
func frontmatter(date time.Time, style Style, tags []string) string {
	if style == "" {
		style = StyleDetailed
	}
	all := dedupe(append(append([]string{}, tags...), fixedTags...))
	quoted := make([]string, len(all))
	for i, tag := range all {
		quoted[i] = fmt.Sprintf("%q", tag)
	}

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "created: %q\n", date.Format("2006-01-02"))
	fmt.Fprintf(&b, "style: %q\n", string(style))
	fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(quoted, ", "))
	b.WriteString("---\n")
	return b.String()
}

// body renders the highlights according to the selected style: bullets for
// concise, a block-quoted explainer plus paragraphs for simple, plain
// paragraphs otherwise.
func body(p NoteParams) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", strings.TrimSpace(p.Topic))

	switch p.Style {
	case StyleConcise:
		for _, h := range p.Highlights {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	case StyleSimple:
		b.WriteString("> In plain terms:\n\n")
		for _, h := range p.Highlights {
			fmt.Fprintf(&b, "%s\n\n", h)
		}
	default:
		for _, h := range p.Highlights {
			fmt.Fprintf(&b, "%s\n\n", h)
		}
	}
	return b.String()
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
