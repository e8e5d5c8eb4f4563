package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "hello-world", GenerateSlug("Hello, World!"))
	assert.Equal(t, "go-1-24-is-out", GenerateSlug("Go 1.24 is out"))
	assert.Equal(t, "안녕하세요-블로그", GenerateSlug("안녕하세요 블로그"))
	assert.Equal(t, "", GenerateSlug("!!!"))
	assert.Equal(t, "", GenerateSlug(""))
}

func TestGenerateSlugIdempotent(t *testing.T) {
	titles := []string{"Hello, World!", "  spaced   out  ", "한글 제목 테스트", "a--b---c"}
	for _, title := range titles {
		once := GenerateSlug(title)
		assert.Equal(t, once, GenerateSlug(once), "slug of %q", title)
	}
}

func TestGenerateExcerpt(t *testing.T) {
	content := "# Title\n\nSome **bold** text with [a link](https://example.com) and `code`.\n\n> quoted\n\n- item one\n- item two"
	excerpt := GenerateExcerpt(content, 150)
	assert.NotContains(t, excerpt, "#")
	assert.NotContains(t, excerpt, "**")
	assert.NotContains(t, excerpt, "](")
	assert.NotContains(t, excerpt, "`")
	assert.Contains(t, excerpt, "Some bold text with a link and code.")
	assert.Contains(t, excerpt, "item one")
}

func TestGenerateExcerptTruncates(t *testing.T) {
	long := strings.Repeat("가나다 ", 200)
	excerpt := GenerateExcerpt(long, 50)
	assert.Equal(t, 50+len([]rune(Ellipsis)), len([]rune(excerpt)))
	assert.True(t, strings.HasSuffix(excerpt, Ellipsis))
}

func TestGenerateExcerptNeverExceedsBound(t *testing.T) {
	for _, content := range []string{"", "short", strings.Repeat("word ", 500)} {
		for _, max := range []int{1, 10, 150} {
			got := GenerateExcerpt(content, max)
			assert.LessOrEqual(t, len([]rune(got)), max+len([]rune(Ellipsis)))
		}
	}
}

func TestGenerateExcerptEmpty(t *testing.T) {
	assert.Equal(t, "", GenerateExcerpt("", 150))
	assert.Equal(t, "", GenerateExcerpt("   \n\t  ", 150))
}

func TestStripMarkupFencedCode(t *testing.T) {
	content := "before\n```go\nfunc main() {}\n```\nafter"
	plain := StripMarkup(content)
	assert.Equal(t, "before after", plain)
}

func TestCalculateReadingTime(t *testing.T) {
	assert.Equal(t, 0, CalculateReadingTime(""))
	assert.Equal(t, 1, CalculateReadingTime("one short sentence"))
	assert.Equal(t, 1, CalculateReadingTime(strings.Repeat("word ", 200)))
	assert.Equal(t, 2, CalculateReadingTime(strings.Repeat("word ", 201)))
	assert.Equal(t, 5, CalculateReadingTime(strings.Repeat("word ", 1000)))
}

func TestCalculateReadingTimeIgnoresMarkup(t *testing.T) {
	// Tags themselves are not words.
	assert.Equal(t, 1, CalculateReadingTime("<div><p>hello</p></div>"))
}

func TestParseTagsRoundTrip(t *testing.T) {
	cases := [][]string{
		{"go", "gorm", "web"},
		{"단일태그"},
		{},
	}
	for _, tags := range cases {
		assert.Equal(t, tags, ParseTags(StringifyTags(tags)))
	}
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ParseTags(" a , , b ,"))
	assert.Equal(t, []string{}, ParseTags(""))
	assert.Equal(t, []string{}, ParseTags(" , ,, "))
}
