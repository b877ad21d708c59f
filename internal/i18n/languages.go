package i18n

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/PabloGalante/career-companion/internal/domain"
)

const DefaultLanguage domain.LanguageCode = "en"

// Language is a supported conversation language.
type Language struct {
	Code domain.LanguageCode `json:"code"`
	Name string              `json:"name"`
}

var languages = []Language{
	{Code: "en", Name: "English"},
	{Code: "zu", Name: "isiZulu"},
	{Code: "xh", Name: "isiXhosa"},
	{Code: "af", Name: "Afrikaans"},
}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Zulu,
	language.MustParse("xh"),
	language.Afrikaans,
})

// Languages lists the supported languages in display order.
func Languages() []Language {
	return append([]Language(nil), languages...)
}

// Name returns the display name used when prompting the model. Unknown codes are English.
func Name(code domain.LanguageCode) string {
	for _, l := range languages {
		if l.Code == code {
			return l.Name
		}
	}
	return "English"
}

// Normalize reduces tags like "zu-ZA" or "af-ZA,en;q=0.8" to a supported
// code. It reports false when no supported language is found.
func Normalize(tag string) (domain.LanguageCode, bool) {
	tags, _, err := language.ParseAcceptLanguage(strings.TrimSpace(tag))
	if err != nil || len(tags) == 0 {
		return DefaultLanguage, false
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence < language.High {
		return DefaultLanguage, false
	}
	return languages[index].Code, true
}
