package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPoints(t *testing.T) {
	tests := []struct {
		points   int64
		expected string
	}{
		{0, "0"},
		{5, "5"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
		{-5, "-5"},
		{-1000, "-1,000"},
		{-1234567, "-1,234,567"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatPoints(tt.points))
	}
}

func TestFormatCooldown(t *testing.T) {
	assert.Equal(t, "3h 25m", FormatCooldown(3, 25))
	assert.Equal(t, "0h 0m", FormatCooldown(0, 0))
	assert.Equal(t, "23h 59m", FormatCooldown(23, 59))
}

func TestMentionUser(t *testing.T) {
	assert.Equal(t, "<@123456789>", MentionUser(123456789))
}
