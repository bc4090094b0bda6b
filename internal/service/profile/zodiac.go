package profile

import "time"

// zodiacSign maps a birth date onto its western zodiac sign.
func zodiacSign(birth time.Time) string {
	month := int(birth.Month())
	day := birth.Day()

	switch {
	case month == 12 && day >= 22 || month == 1 && day <= 19:
		return "capricorn"
	case month == 1 || month == 2 && day <= 17:
		return "aquarius"
	case month == 2 && day <= 29 || month == 3 && day <= 19:
		return "pisces"
	case month == 3 || month == 4 && day <= 19:
		return "aries"
	case month == 4 && day <= 30 || month == 5 && day <= 20:
		return "taurus"
	case month == 5 || month == 6 && day <= 20:
		return "gemini"
	case month == 6 && day <= 30 || month == 7 && day <= 22:
		return "cancer"
	case month == 7 || month == 8 && day <= 22:
		return "leo"
	case month == 8 || month == 9 && day <= 22:
		return "virgo"
	case month == 9 && day <= 30 || month == 10 && day <= 22:
		return "libra"
	case month == 10 || month == 11 && day <= 21:
		return "scorpio"
	case month == 11 && day <= 30 || month == 12:
		return "sagittarius"
	}
	return ""
}
