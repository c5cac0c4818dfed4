package recognition

import (
	"fmt"

	"landmark-lens/api/internal/i18n"
)

const (
	landmarkPromptEN = `Identify the name of the landmark in this image and provide a historical summary. Format your response exactly as follows, with no additional text:
NAME: [The identified name of the landmark]
HISTORY: [A historical summary of the landmark]`

	landmarkPromptID = `Identifikasi nama landmark dalam gambar ini dan berikan ringkasan sejarahnya. Format respons Anda secara tepat sebagai berikut, tanpa teks tambahan:
NAME: [Nama landmark yang diidentifikasi]
HISTORY: [Ringkasan sejarah landmark]`

	directionsPromptEN = `Provide detailed, turn-by-turn driving directions from %s to %s. At the end, provide a Google Maps URL for the route. Format your response exactly as follows:
DIRECTIONS:
[Numbered list of directions]

MAP_URL: [The Google Maps URL]`

	directionsPromptID = `Berikan petunjuk arah mengemudi yang detail, belokan demi belokan dari %s ke %s. Di akhir, berikan URL Google Maps untuk rute tersebut. Format respons Anda secara tepat sebagai berikut:
DIRECTIONS:
[Daftar arah bernomor]

MAP_URL: [URL Google Maps]`
)

func landmarkPrompt(lang i18n.Language) string {
	if lang == i18n.ID {
		return landmarkPromptID
	}
	return landmarkPromptEN
}

func directionsPrompt(lang i18n.Language, origin, destination string) string {
	tpl := directionsPromptEN
	if lang == i18n.ID {
		tpl = directionsPromptID
	}
	return fmt.Sprintf(tpl, origin, destination)
}
