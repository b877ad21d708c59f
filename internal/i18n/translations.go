package i18n

import "github.com/PabloGalante/career-companion/internal/domain"

// Starter is a suggested opening prompt shown before the conversation starts.
type Starter struct {
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

type Translation struct {
	HeaderTitle string    `json:"header_title"`
	Starters    []Starter `json:"starters"`
}

var translations = map[domain.LanguageCode]Translation{
	"en": {
		HeaderTitle: "Career & Mental Health Assistant",
		Starters: []Starter{
			{Title: "Find me a job", Prompt: "Can you help me find a job?"},
			{Title: "I'm feeling anxious", Prompt: "I'm feeling anxious about job searching. Can you give me some tips?"},
			{Title: "In-demand tech skills", Prompt: "What are the most in-demand tech skills for remote jobs right now?"},
		},
	},
	"zu": {
		HeaderTitle: "Umsizi Wezemisebenzi Nempilo Yengqondo",
		Starters: []Starter{
			{Title: "Ngingitholele umsebenzi", Prompt: "Ungakwazi ukungisiza ngithole umsebenzi?"},
			{Title: "Ngizizwa ngikhathazekile", Prompt: "Ngizizwa ngikhathazekile ngokufuna umsebenzi. Unganginika amanye amathiphu?"},
			{Title: "Amakhono obuchwepheshe adingekayo", Prompt: "Imaphi amakhono obuchwepheshe adingeka kakhulu emisebenzini eyenziwa ukude njengamanje?"},
		},
	},
	"xh": {
		HeaderTitle: "Umncedisi Wezemisebenzi Nempilo Yengqondo",
		Starters: []Starter{
			{Title: "Ndifumanele umsebenzi", Prompt: "Ungandinceda ndifumane umsebenzi?"},
			{Title: "Ndiziva ndixhalabile", Prompt: "Ndiziva ndixhalabile malunga nokukhangela umsebenzi. Ungandinika iingcebiso?"},
			{Title: "Izakhono zetekhnoloji ezifunekayo", Prompt: "Zeziphi izakhono zetekhnoloji ezifuneka kakhulu kwimisebenzi ekude ngoku?"},
		},
	},
	"af": {
		HeaderTitle: "Beroeps- en Geestesgesondheidsassistent",
		Starters: []Starter{
			{Title: "Soek vir my werk", Prompt: "Kan jy my help om werk te kry?"},
			{Title: "Ek voel angstig", Prompt: "Ek voel angstig oor werksoek. Kan jy my wenke gee?"},
			{Title: "Gevraagde tegnologiese vaardighede", Prompt: "Wat is die mees gevraagde tegnologiese vaardighede vir afgeleë werk op die oomblik?"},
		},
	},
}

// For returns the strings for code, falling back to English.
func For(code domain.LanguageCode) Translation {
	t, ok := translations[code]
	if !ok {
		t = translations[DefaultLanguage]
	}
	t.Starters = append([]Starter(nil), t.Starters...)
	return t
}
