package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	wordsPerMinute     = 200
	excerptMaxRunes    = 200
	metaDescriptionMax = 160
)

var (
	slugStripRe = regexp.MustCompile(`[^\w\s-]`)
	slugSpaceRe = regexp.MustCompile(`\s+`)
	slugDashRe  = regexp.MustCompile(`-{2,}`)
)

// Slugify turns a title into a URL-safe slug: lowercase word characters and
// single hyphens only, no leading or trailing hyphen.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugSpaceRe.ReplaceAllString(s, "-")
	s = slugDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// timestampSlug appends the current unix-millisecond timestamp to a slug.
func timestampSlug(slug string) string {
	return fmt.Sprintf("%s-%d", slug, time.Now().UnixMilli())
}

// ReadTime estimates reading time in minutes at 200 words per minute,
// never less than 1.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// stripHTML removes markup from content, keeping only text nodes.
func stripHTML(s string) string {
	tok := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.Write(tok.Text())
		}
	}
	return b.String()
}

// DeriveExcerpt produces an excerpt from content: tags stripped, whitespace
// collapsed, truncated to 200 characters with a "..." suffix when cut.
func DeriveExcerpt(content string) string {
	plain := strings.Join(strings.Fields(stripHTML(content)), " ")
	runes := []rune(plain)
	if len(runes) > excerptMaxRunes {
		return string(runes[:excerptMaxRunes]) + "..."
	}
	return plain
}

// DeriveMetaDescription takes the first 160 characters of the excerpt.
func DeriveMetaDescription(excerpt string) string {
	runes := []rune(excerpt)
	if len(runes) > metaDescriptionMax {
		return string(runes[:metaDescriptionMax])
	}
	return excerpt
}

func lowercaseAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
