package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"traloc/internal/tra"

	"github.com/rs/zerolog/log"
)

// DefaultExt is the file extension of the legacy resource files.
const DefaultExt = ".tra"

// Loader reads the four per-language resource files from a directory. It is
// the host-side collaborator of the tra package: it only collects raw file
// contents, all parsing and validation happens in tra.Build.
type Loader struct {
	ext string
}

// NewLoader creates a Loader for files named <lang><ext>.
func NewLoader(ext string) *Loader {
	if ext == "" {
		ext = DefaultExt
	}
	return &Loader{ext: ext}
}

// Load reads en/fr/nl/de resource files from dir. Every file must exist and
// be readable; a missing language is a load failure, not a partial result.
func (l *Loader) Load(dir string) (map[tra.Lang]string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve directory: %w", err)
	}

	blobs := make(map[tra.Lang]string, len(tra.Langs))
	for _, lang := range tra.Langs {
		path := filepath.Join(dir, string(lang)+l.ext)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s resource file: %w", lang, err)
		}
		blobs[lang] = string(stripBOM(data))
	}

	log.Info().Str("dir", dir).Int("languages", len(blobs)).Msg("Loaded language files")
	return blobs, nil
}

// stripBOM removes a leading UTF-8 byte order mark. Legacy exports written on
// Windows often carry one.
func stripBOM(b []byte) []byte {
	bom := []byte{0xEF, 0xBB, 0xBF}
	if len(b) >= 3 && bytes.Equal(b[:3], bom) {
		return b[3:]
	}
	return b
}
