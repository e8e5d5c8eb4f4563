package textutil

import (
	"math"
	"regexp"
	"strings"
)

// Ellipsis is appended to truncated excerpts.
const Ellipsis = "..."

// wordsPerMinute is the reading speed assumed by CalculateReadingTime.
const wordsPerMinute = 200

var (
	htmlTagRe      = regexp.MustCompile(`<[^>]*>`)
	fencedCodeRe   = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe   = regexp.MustCompile("`([^`]*)`")
	imageRe        = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRe         = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	headerRe       = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	blockquoteRe   = regexp.MustCompile(`(?m)^>\s*`)
	listMarkerRe   = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+`)
	horizontalRe   = regexp.MustCompile(`(?m)^(?:-{3,}|\*{3,}|_{3,})\s*$`)
	emphasisRe     = regexp.MustCompile(`(\*{1,3}|_{1,3}|~~)(\S(?:.*?\S)?)(\*{1,3}|_{1,3}|~~)`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	slugInvalidRe  = regexp.MustCompile(`[^a-z0-9가-힣]`)
	slugCollapseRe = regexp.MustCompile(`-+`)
)

// GenerateSlug derives a URL-safe slug from a title. Lowercases, replaces
// every rune outside latin letters, digits and Hangul syllables with "-",
// collapses runs and trims the edges. Uniqueness is the caller's problem.
func GenerateSlug(title string) string {
	slug := strings.ToLower(title)
	slug = slugInvalidRe.ReplaceAllString(slug, "-")
	slug = slugCollapseRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// StripMarkup removes HTML tags and common markdown syntax, leaving plain
// text with collapsed whitespace.
func StripMarkup(content string) string {
	text := fencedCodeRe.ReplaceAllString(content, " ")
	text = imageRe.ReplaceAllString(text, " ")
	text = linkRe.ReplaceAllString(text, "$1")
	text = inlineCodeRe.ReplaceAllString(text, "$1")
	text = htmlTagRe.ReplaceAllString(text, " ")
	text = horizontalRe.ReplaceAllString(text, " ")
	text = headerRe.ReplaceAllString(text, "")
	text = blockquoteRe.ReplaceAllString(text, "")
	text = listMarkerRe.ReplaceAllString(text, "")
	text = emphasisRe.ReplaceAllString(text, "$2")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// GenerateExcerpt produces a plain-text preview of at most maxLength runes,
// plus an ellipsis when truncated. Empty content yields "".
func GenerateExcerpt(content string, maxLength int) string {
	plain := StripMarkup(content)
	if plain == "" || maxLength <= 0 {
		return ""
	}
	runes := []rune(plain)
	if len(runes) <= maxLength {
		return plain
	}
	return string(runes[:maxLength]) + Ellipsis
}

// CalculateReadingTime estimates reading time in whole minutes, assuming
// 200 words per minute. Non-empty content reads for at least one minute.
func CalculateReadingTime(content string) int {
	plain := StripMarkup(content)
	if plain == "" {
		return 0
	}
	words := len(strings.Fields(plain))
	minutes := int(math.Ceil(float64(words) / float64(wordsPerMinute)))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// ParseTags splits a comma-separated tag string, trimming entries and
// dropping empty ones.
func ParseTags(s string) []string {
	tags := []string{}
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// StringifyTags joins tags into the comma-separated form ParseTags accepts.
func StringifyTags(tags []string) string {
	return strings.Join(tags, ", ")
}
