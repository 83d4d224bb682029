package rag

import "strings"

// Separator delimits chunk texts inside an assembled context so the
// generation model (and anyone reading the prompt) can see where one
// retrieved chunk ends and the next begins.
const Separator = "\n\n---\n\n"

// Context is the assembled retrieval result handed to the generation layer.
type Context struct {
	// Text is the concatenation of the retrieved chunk texts in index order,
	// joined by Separator. Empty when no usable records were retrieved.
	Text string

	// Sources lists the distinct document names the context was drawn from,
	// in order of first occurrence.
	Sources []string
}

// Empty reports whether the context carries no usable text. An empty context
// is the canonical "no documents ingested yet" signal, not an error; callers
// must short-circuit to the sentinel response instead of invoking the
// generation model.
func (c Context) Empty() bool { return c.Text == "" }

// Assemble builds a Context from retrieved records. Records are taken in the
// order given (the store returns them in descending similarity; Assemble does
// not re-sort). Records with empty text are skipped; empty document names are
// excluded from Sources; duplicate names keep their first position.
func Assemble(records []Record) Context {
	var (
		texts   []string
		sources []string
		seen    = make(map[string]bool)
	)

	for _, r := range records {
		if r.Text == "" {
			continue
		}
		texts = append(texts, r.Text)
		if r.DocumentName != "" && !seen[r.DocumentName] {
			seen[r.DocumentName] = true
			sources = append(sources, r.DocumentName)
		}
	}

	if len(texts) == 0 {
		return Context{}
	}

	return Context{
		Text:    strings.Join(texts, Separator),
		Sources: sources,
	}
}
