package logx

import (
	"regexp"
)

type SensitiveDataMaskerInterface interface {
	Mask(input []byte) []byte
}

//nolint:gochecknoglobals
var sensitiveDataPatterns = []*regexp.Regexp{
	// Headers.
	regexp.MustCompile("(?s)(Authorization: Bearer ).+?(\r)"),
	regexp.MustCompile("(?s)(Authorization: Basic ).+?(\r)"),
	regexp.MustCompile("(?s)(X-Amz-Date: ).+?(\r)"),
	// JSON fields.
	regexp.MustCompile(`(?s)("[Pp]assword":\s?").+?(")`),
	regexp.MustCompile(`(?s)("[Aa]ccessKey":\s?").+?(")`),
	regexp.MustCompile(`(?s)("[Ss]ecretKey":\s?").+?(")`),
	regexp.MustCompile(`(?s)("token":\s?").+?(")`),
	regexp.MustCompile(`(?s)("email":\s?").+?(")`),
	// Query parameters.
	regexp.MustCompile(`(apiKey=)[^&\s]+`),
	regexp.MustCompile(`(accessToken=)[^&\s]+`),
}

const maskReplacement = "${1}***${2}"

type SensitiveDataMasker struct{}

func NewSensitiveDataMasker() SensitiveDataMasker {
	return SensitiveDataMasker{}
}

func (SensitiveDataMasker) Mask(input []byte) []byte {
	for _, pattern := range sensitiveDataPatterns {
		input = pattern.ReplaceAll(input, []byte(maskReplacement))
	}

	return input
}
