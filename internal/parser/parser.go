// Package parser extracts the structure of a Markdown note: title,
// frontmatter, and tags.
//
// Frontmatter here is a deliberately line-oriented dialect, not full YAML:
// only `key: value` lines between two `---` delimiter lines are considered,
// scalars may be double-quoted, and the only sequence form is a bracketed
// `[a, b, c]` list. Malformed lines are skipped, never an error.
package parser

import (
	"regexp"
	"strings"

	"github.com/starford/ansuz/internal/models"
)

const delim = "---"

// UntitledTitle is returned when a note has no level-1 heading.
const UntitledTitle = "Untitled"

var (
	fmTagsRe    = regexp.MustCompile(`tags:\s*\[(.*?)\]`)
	inlineTagRe = regexp.MustCompile(`#(\w+)`)
)

// Parse extracts title, frontmatter, and tags from raw note content.
// It never fails: malformed structure degrades to an absent field.
func Parse(content string) models.Note {
	return models.Note{
		Title:       Title(content),
		Frontmatter: Frontmatter(content),
		Tags:        Tags(content),
	}
}

// Title returns the text of the first level-1 heading, or UntitledTitle if
// the content has none. Deeper headings never count, even when they appear
// before an H1.
func Title(content string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return UntitledTitle
}

// Frontmatter parses the leading ----delimited block into key/value pairs.
// It returns nil when the first line is not exactly "---" or when no closing
// delimiter exists; both are absence, not errors.
func Frontmatter(content string) map[string]models.FrontmatterValue {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != delim {
		return nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delim {
			end = i
			break
		}
	}
	if end < 0 {
		// Opening delimiter with no close: treat the whole file as body.
		return nil
	}

	fm := make(map[string]models.FrontmatterValue)
	for _, line := range lines[1:end] {
		idx := strings.Index(line, ":")
		if idx <= 0 {
			// No colon, or colon in position 0: not a key/value line.
			continue
		}
		key := strings.TrimSpace(line[:idx])
		if key == "" {
			continue
		}
		raw := strings.TrimSpace(line[idx+1:])
		fm[key] = parseValue(raw)
	}
	return fm
}

// parseValue interprets a raw frontmatter value: a bracketed list is split
// into tokens, anything else is a scalar with surrounding quotes stripped.
func parseValue(raw string) models.FrontmatterValue {
	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		return models.ListValue(splitList(raw[1 : len(raw)-1]))
	}
	return models.StringValue(unquote(raw))
}

// splitList splits bracket contents on commas into trimmed, quote-stripped,
// non-empty tokens.
func splitList(inner string) []string {
	var out []string
	for _, tok := range strings.Split(inner, ",") {
		tok = strings.TrimSpace(unquote(strings.TrimSpace(tok)))
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// unquote strips one pair of matching double quotes.
func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

// Tags collects the deduplicated union of frontmatter `tags: [...]` entries
// and inline #hashtags found outside the frontmatter region. The scan
// toggles the in-frontmatter flag on every line that, trimmed, equals "---".
func Tags(content string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(tag string) {
		if tag == "" {
			return
		}
		if _, dup := seen[tag]; dup {
			return
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}

	inFrontmatter := false
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == delim {
			inFrontmatter = !inFrontmatter
			continue
		}
		if inFrontmatter {
			if strings.HasPrefix(strings.TrimSpace(line), "tags:") {
				if m := fmTagsRe.FindStringSubmatch(line); m != nil {
					for _, tok := range splitList(m[1]) {
						add(tok)
					}
				}
			}
			continue
		}
		if !strings.Contains(line, "#") {
			continue
		}
		for _, m := range inlineTagRe.FindAllStringSubmatch(line, -1) {
			add(m[1])
		}
	}
	return out
}
