package tra

// Lang identifies one of the four languages carried by the legacy tra format.
type Lang string

const (
	LangEN Lang = "en"
	LangFR Lang = "fr"
	LangNL Lang = "nl"
	LangDE Lang = "de"
)

// Langs lists every language the format carries. The set is closed at this
// layer: extending it is a caller concern, not a parser concern.
var Langs = []Lang{LangEN, LangFR, LangNL, LangDE}
