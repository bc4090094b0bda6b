package profile

import "strings"

// countryFlag turns an ISO 3166-1 alpha-2 code into its regional-indicator
// flag glyph. Unknown input yields an empty string.
func countryFlag(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return ""
	}

	var flag []rune
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return ""
		}
		flag = append(flag, 0x1F1E6+c-'A')
	}
	return string(flag)
}
