package export

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"traloc/internal/tra"

	"github.com/rs/zerolog/log"
)

// Row is one flattened translation entry, ready for file export or
// aggregation alongside rows from other source adapters.
type Row struct {
	Identifier string `json:"identifier"`
	Lang       string `json:"lang"`
	Text       string `json:"text"`
	SourceTag  string `json:"source_tag"`
}

// Flatten turns the adapter's index into deterministic rows: identifiers in
// lexicographic order, languages in the fixed format order. Absent languages
// produce no row.
func Flatten(a *tra.Adapter) []Row {
	translations := a.Translations()

	ids := make([]string, 0, len(translations))
	for id := range translations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var rows []Row
	for _, id := range ids {
		bundle := translations[id]
		for _, lang := range tra.Langs {
			text, ok := bundle[lang]
			if !ok {
				continue
			}
			rows = append(rows, Row{
				Identifier: id,
				Lang:       string(lang),
				Text:       text,
				SourceTag:  a.SourceTag(),
			})
		}
	}
	return rows
}

// WriteTSV writes all translation rows to a TSV file.
func WriteTSV(a *tra.Adapter, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create TSV file: %w", err)
	}
	defer f.Close()

	fmt.Fprintln(f, "identifier\tlang\ttext\tsource_tag")
	for _, r := range Flatten(a) {
		fmt.Fprintf(f, "%s\t%s\t%s\t%s\n", r.Identifier, r.Lang, escapeTSV(r.Text), r.SourceTag)
	}

	log.Info().Str("path", outputPath).Int("identifiers", a.Count()).Msg("Exported translations to TSV")
	return nil
}

// WriteJSON writes all translation rows to a JSON file.
func WriteJSON(a *tra.Adapter, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create JSON file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(Flatten(a)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	log.Info().Str("path", outputPath).Int("identifiers", a.Count()).Msg("Exported translations to JSON")
	return nil
}

// escapeTSV replaces tabs and newlines in a string for TSV safety.
func escapeTSV(s string) string {
	s = strings.ReplaceAll(s, "\t", "\\t")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	return s
}
