package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	slugMultiHyphen  = regexp.MustCompile(`-+`)
)

// GenerateSlug builds a URL-safe slug from a category or product name.
// Cyrillic and Armenian characters are transliterated to ASCII first.
func GenerateSlug(input string) string {
	ascii := Transliterate(input)

	lower := strings.ToLower(ascii)
	hyphenated := strings.ReplaceAll(lower, " ", "-")
	cleaned := slugInvalidChars.ReplaceAllString(hyphenated, "")
	normalized := slugMultiHyphen.ReplaceAllString(cleaned, "-")

	return strings.Trim(normalized, "-")
}

// Transliterate converts Cyrillic and Armenian text to a Latin
// approximation. Unknown characters pass through untouched and are
// stripped later by GenerateSlug.
func Transliterate(input string) string {
	mappings := map[rune]string{
		// Russian Cyrillic
		'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
		'е': "e", 'ё': "yo", 'ж': "zh", 'з': "z", 'и': "i",
		'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
		'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
		'у': "u", 'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch",
		'ш': "sh", 'щ': "shch", 'ъ': "", 'ы': "y", 'ь': "",
		'э': "e", 'ю': "yu", 'я': "ya",

		'А': "A", 'Б': "B", 'В': "V", 'Г': "G", 'Д': "D",
		'Е': "E", 'Ё': "Yo", 'Ж': "Zh", 'З': "Z", 'И': "I",
		'Й': "Y", 'К': "K", 'Л': "L", 'М': "M", 'Н': "N",
		'О': "O", 'П': "P", 'Р': "R", 'С': "S", 'Т': "T",
		'У': "U", 'Ф': "F", 'Х': "Kh", 'Ц': "Ts", 'Ч': "Ch",
		'Ш': "Sh", 'Щ': "Shch", 'Ъ': "", 'Ы': "Y", 'Ь': "",
		'Э': "E", 'Ю': "Yu", 'Я': "Ya",

		// Armenian (lowercase; a simplified mapping)
		'ա': "a", 'բ': "b", 'գ': "g", 'դ': "d", 'ե': "e",
		'զ': "z", 'է': "e", 'ը': "y", 'թ': "t", 'ժ': "zh",
		'ի': "i", 'լ': "l", 'խ': "kh", 'ծ': "ts", 'կ': "k",
		'հ': "h", 'ձ': "dz", 'ղ': "gh", 'ճ': "ch", 'մ': "m",
		'յ': "y", 'ն': "n", 'շ': "sh", 'ո': "o", 'չ': "ch",
		'պ': "p", 'ջ': "j", 'ռ': "r", 'ս': "s", 'վ': "v",
		'տ': "t", 'ր': "r", 'ց': "c", 'ւ': "u", 'փ': "p",
		'ք': "q", 'և': "ev", 'օ': "o", 'ֆ': "f",
	}

	var sb strings.Builder
	sb.Grow(len(input))

	for _, r := range input {
		if replacement, ok := mappings[r]; ok {
			sb.WriteString(replacement)
		} else {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
