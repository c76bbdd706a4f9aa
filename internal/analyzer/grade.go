package analyzer

// Grade maps a total score onto a letter grade. Defined for every integer:
// anything below 40, including negative inputs, falls through to F.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 80:
		return "A-"
	case score >= 75:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 65:
		return "B-"
	case score >= 60:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 50:
		return "C-"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}

var gradeMeanings = map[string]string{
	"A+": "Outstanding email security. Your domain is extremely well-protected.",
	"A":  "Excellent email security. Your configuration is very strong.",
	"A-": "Very good email security with minor areas for improvement.",
	"B+": "Good email security, but some important components need attention.",
	"B":  "Decent email security with several areas that should be improved.",
	"B-": "Below average email security. Several important issues need fixing.",
	"C+": "Poor email security. You're vulnerable to various email attacks.",
	"C":  "Poor email security with significant gaps in protection.",
	"C-": "Very poor email security. Immediate action needed.",
	"D":  "Dangerously poor email security. You're highly vulnerable.",
	"F":  "Failed email security. Critical immediate action required.",
}

// GradeMeaning explains a letter grade in plain English.
func GradeMeaning(grade string) string {
	if meaning, ok := gradeMeanings[grade]; ok {
		return meaning
	}
	return "Unknown grade"
}
