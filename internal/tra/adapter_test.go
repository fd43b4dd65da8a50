package tra_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"traloc/internal/tra"
)

func fourBlobs(en, fr, nl, de string) map[tra.Lang]string {
	return map[tra.Lang]string{
		tra.LangEN: en,
		tra.LangFR: fr,
		tra.LangNL: nl,
		tra.LangDE: de,
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	t.Run("end to end", func(t *testing.T) {
		t.Parallel()
		a, err := tra.Build(fourBlobs(
			"1,\"Submit\",\"All\"\n2,\"Cancel\",\"All\"",
			"1,\"Soumettre\",\"All\"",
			"",
			"",
		))
		require.NoError(t, err)

		require.Equal(t, map[string]tra.Bundle{
			"1": {tra.LangEN: "Submit", tra.LangFR: "Soumettre"},
			"2": {tra.LangEN: "Cancel"},
		}, a.Translations())
		require.Equal(t, 2, a.Count())
		require.Empty(t, a.Metadata())
		require.Equal(t, "legacy-tra", a.SourceTag())
	})

	t.Run("bundles cover exactly the languages present", func(t *testing.T) {
		t.Parallel()
		a, err := tra.Build(fourBlobs(
			`100,"Open"`,
			`100,"Ouvrir"`,
			`200,"Sluiten"`,
			"",
		))
		require.NoError(t, err)

		open, ok := a.Lookup("100")
		require.True(t, ok)
		require.Equal(t, tra.Bundle{tra.LangEN: "Open", tra.LangFR: "Ouvrir"}, open)
		require.NotContains(t, open, tra.LangNL)
		require.NotContains(t, open, tra.LangDE)

		sluiten, ok := a.Lookup("200")
		require.True(t, ok)
		require.Equal(t, tra.Bundle{tra.LangNL: "Sluiten"}, sluiten)
	})

	t.Run("duplicate identifier keeps the last occurrence", func(t *testing.T) {
		t.Parallel()
		a, err := tra.Build(fourBlobs(
			"3,\"First\"\n3,\"Second\"",
			"", "", "",
		))
		require.NoError(t, err)

		b, ok := a.Lookup("3")
		require.True(t, ok)
		require.Equal(t, "Second", b[tra.LangEN])
	})

	t.Run("crlf and lf parse identically", func(t *testing.T) {
		t.Parallel()
		content := "1,\"One\"\n2,\"Two\"\n3,\"Three\""
		crlf := strings.ReplaceAll(content, "\n", "\r\n")

		a, err := tra.Build(fourBlobs(content, "", "", ""))
		require.NoError(t, err)
		b, err := tra.Build(fourBlobs(crlf, "", "", ""))
		require.NoError(t, err)

		require.Equal(t, a.Translations(), b.Translations())
		require.Equal(t, a.SkippedLines(), b.SkippedLines())
	})

	t.Run("malformed lines are skipped, not fatal", func(t *testing.T) {
		t.Parallel()
		a, err := tra.Build(fourBlobs(
			"garbage line\n1,\"Kept\"\nanother bad one",
			"", "", "",
		))
		require.NoError(t, err)
		require.Equal(t, 1, a.Count())
		require.Equal(t, 2, a.SkippedLines())
	})

	t.Run("missing language fails construction", func(t *testing.T) {
		t.Parallel()
		blobs := fourBlobs("", "", "", "")
		delete(blobs, tra.LangDE)

		a, err := tra.Build(blobs)
		require.ErrorIs(t, err, tra.ErrInvalidInput)
		require.Nil(t, a)
	})

	t.Run("extra language fails construction", func(t *testing.T) {
		t.Parallel()
		blobs := fourBlobs("", "", "", "")
		blobs[tra.Lang("es")] = `1,"Hola"`

		_, err := tra.Build(blobs)
		require.ErrorIs(t, err, tra.ErrInvalidInput)
	})

	t.Run("nil input fails construction", func(t *testing.T) {
		t.Parallel()
		_, err := tra.Build(nil)
		require.ErrorIs(t, err, tra.ErrInvalidInput)
	})
}

func TestParseBlob(t *testing.T) {
	t.Parallel()

	t.Run("builds a table in line order", func(t *testing.T) {
		t.Parallel()
		table, skipped := tra.ParseBlob("1,\"A\"\n\n2,B\n1,\"C\"")
		require.Equal(t, map[string]string{"1": "C", "2": "B"}, table)
		require.Zero(t, skipped)
	})

	t.Run("counts only non-blank unparseable lines", func(t *testing.T) {
		t.Parallel()
		table, skipped := tra.ParseBlob("\n  \nnot a record\n5,\"ok\"\n")
		require.Equal(t, map[string]string{"5": "ok"}, table)
		require.Equal(t, 1, skipped)
	})

	t.Run("empty blob yields empty table", func(t *testing.T) {
		t.Parallel()
		table, skipped := tra.ParseBlob("")
		require.Empty(t, table)
		require.Zero(t, skipped)
	})
}
