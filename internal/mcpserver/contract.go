package mcpserver

// NoteFormatContract describes the canonical format of generated
// conversation notes, served both as a tool and as a resource so LLM
// consumers know what to expect from the vault.
const NoteFormatContract = `# Ansuz Conversation Note Format

Every note created by the ` + "`create_conversation_note`" + ` tool follows this structure.

## Structure

` + "```" + `markdown
---
created: "2024-03-15"                 # generation date, yyyy-MM-dd, quoted
style: "detailed"                     # body style that was applied
tags: ["project", "mcp", "conversation"]  # caller tags plus fixed literals
---

# Topic of the conversation

One paragraph (or bullet, or block-quoted explainer) per highlight.
` + "```" + `

## Rules

1. **Frontmatter values are quoted strings**; array values are bracketed,
   comma-joined, quoted tokens on a single line.
2. **The tags list** always ends with the fixed literals ` + "`mcp`" + ` and
   ` + "`conversation`" + `; caller-supplied tags come first, deduplicated.
3. **Filenames** look like ` + "`2024-03-15 - Sanitized topic.md`" + `. The topic is
   stripped of ` + "`<>:\"/\\|?*`" + `, whitespace runs collapse to single spaces,
   and the result is truncated to 100 characters.
4. **Styles:**
   - ` + "`concise`" + ` — heading plus one bullet per highlight.
   - ` + "`detailed`" + ` (default) — heading plus one paragraph per highlight.
   - ` + "`simple`" + ` — heading, a ` + "`> In plain terms:`" + ` block-quote marker,
     then one paragraph per highlight.
5. **Inline tags** may be added to the body as ` + "`#hashtags`" + `; search unions
   them with the frontmatter tag list.
6. **Encoding** is UTF-8; paths use forward slashes and end with ` + "`.md`" + `.
`
