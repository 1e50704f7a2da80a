package services

import "regexp"

var (
	upperRe  = regexp.MustCompile(`[A-Z]`)
	lowerRe  = regexp.MustCompile(`[a-z]`)
	digitRe  = regexp.MustCompile(`[0-9]`)
	symbolRe = regexp.MustCompile(`[^A-Za-z0-9]`)
)

type PasswordStrength struct {
	Score    int      `json:"score"`
	Level    string   `json:"level"`
	Feedback []string `json:"feedback"`
	IsStrong bool     `json:"is_strong"`
}

var strengthLevels = []string{"very weak", "weak", "fair", "strong", "very strong", "very strong"}

// CheckPasswordStrength scores a password 0-5. Purely advisory; registration
// never rejects a password for being weak, only for being too short.
func CheckPasswordStrength(password string) PasswordStrength {
	score := 0
	feedback := []string{}

	if len(password) >= 8 {
		score++
	} else {
		feedback = append(feedback, "use at least 8 characters")
	}
	if upperRe.MatchString(password) {
		score++
	} else {
		feedback = append(feedback, "add an uppercase letter")
	}
	if lowerRe.MatchString(password) {
		score++
	} else {
		feedback = append(feedback, "add a lowercase letter")
	}
	if digitRe.MatchString(password) {
		score++
	} else {
		feedback = append(feedback, "add a digit")
	}
	if symbolRe.MatchString(password) {
		score++
	} else {
		feedback = append(feedback, "add a special character")
	}

	return PasswordStrength{
		Score:    score,
		Level:    strengthLevels[score],
		Feedback: feedback,
		IsStrong: score >= 4,
	}
}
