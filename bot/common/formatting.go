package common

import (
	"fmt"
	"strings"
)

// FormatPoints formats a point amount with thousand separators
func FormatPoints(points int64) string {
	negative := points < 0
	if negative {
		points = -points
	}

	str := fmt.Sprintf("%d", points)

	n := len(str)
	var result strings.Builder
	if negative {
		result.WriteRune('-')
	}
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatCooldown formats a remaining cooldown as "Xh Ym"
func FormatCooldown(hours, minutes int) string {
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// MentionUser renders a Discord mention for an account id
func MentionUser(discordID int64) string {
	return fmt.Sprintf("<@%d>", discordID)
}
