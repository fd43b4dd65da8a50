package tra

import (
	"errors"
	"fmt"
	"strings"
)

// SourceTag labels this adapter's output so downstream aggregators can tell
// apart translations coming from different source adapters.
const SourceTag = "legacy-tra"

// Bundle holds the texts available for one identifier, keyed by language.
// A language without an entry for the identifier is absent from the bundle;
// there is no empty-string backfill.
type Bundle map[Lang]string

// Metadata carries per-identifier status/audit fields. The legacy tra format
// has none, so the adapter's metadata map is always empty.
type Metadata map[string]string

// ErrInvalidInput is returned by Build when the input does not cover exactly
// the four supported languages.
var ErrInvalidInput = errors.New("invalid input format: need exactly the four supported language blobs")

// Adapter is the immutable translation index built from the four per-language
// blobs. It is constructed once by Build and never mutated afterwards, so
// concurrent readers need no locking.
type Adapter struct {
	translations map[string]Bundle
	metadata     map[string]Metadata
	skipped      int
}

// Build parses the four language blobs and merges them into one index keyed
// by the union of identifiers seen in any language. Within one blob a
// repeated identifier keeps its last occurrence. The only failure mode is
// input-shape validation: a missing or extra language fails construction
// before any parsing happens.
func Build(blobs map[Lang]string) (*Adapter, error) {
	if len(blobs) != len(Langs) {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidInput, len(blobs))
	}
	for _, l := range Langs {
		if _, ok := blobs[l]; !ok {
			return nil, fmt.Errorf("%w, missing %q", ErrInvalidInput, l)
		}
	}

	a := &Adapter{
		translations: make(map[string]Bundle),
		metadata:     make(map[string]Metadata),
	}

	for _, l := range Langs {
		table, skipped := ParseBlob(blobs[l])
		a.skipped += skipped
		for id, text := range table {
			b, ok := a.translations[id]
			if !ok {
				b = make(Bundle, len(Langs))
				a.translations[id] = b
			}
			b[l] = text
		}
	}

	return a, nil
}

// ParseBlob parses one language's full file content into an identifier→text
// table. Both \n and \r\n line endings are accepted. The second return value
// counts non-blank lines that matched neither line form, as a diagnostic;
// such lines are dropped, never reported as errors.
func ParseBlob(blob string) (map[string]string, int) {
	table := make(map[string]string)
	skipped := 0

	normalized := strings.ReplaceAll(blob, "\r\n", "\n")
	for _, line := range strings.Split(normalized, "\n") {
		entry, ok := ParseLine(line)
		if ok {
			table[entry.ID] = entry.Text
			continue
		}
		if strings.TrimSpace(line) != "" {
			skipped++
		}
	}

	return table, skipped
}

// Translations returns the merged identifier→bundle map. The map is shared
// with the adapter, not copied; treat it as read-only.
func (a *Adapter) Translations() map[string]Bundle { return a.translations }

// Metadata returns the identifier→metadata map. Always empty for this
// format.
func (a *Adapter) Metadata() map[string]Metadata { return a.metadata }

// Count returns the number of distinct identifiers in the index.
func (a *Adapter) Count() int { return len(a.translations) }

// SourceTag returns the fixed provenance tag for this data origin.
func (a *Adapter) SourceTag() string { return SourceTag }

// SkippedLines returns how many non-blank lines across all four blobs failed
// to parse.
func (a *Adapter) SkippedLines() int { return a.skipped }

// Lookup returns the bundle for one identifier.
func (a *Adapter) Lookup(id string) (Bundle, bool) {
	b, ok := a.translations[id]
	return b, ok
}
