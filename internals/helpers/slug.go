package helper

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

const DefaultSlugMaxLen = 160

// SlugOptions describes how slug uniqueness is checked against the DB.
type SlugOptions struct {
	Table      string // e.g. "shelters"
	SlugColumn string // e.g. "shelter_slug"
	// Extra filters for scoped uniqueness, e.g. map[string]any{"shelter_city": city}
	Filters map[string]any
	// Maximum slug length including the -2, -3 suffixes. 0 means DefaultSlugMaxLen.
	MaxLen int
	// Fallback base when the input normalizes to empty. Required.
	DefaultBase string
}

// GenerateSlug normalizes a string into a slug: lower-case, non-alnum runs
// collapsed into single dashes, dashes trimmed at both ends.
func GenerateSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else {
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")
	reDash := regexp.MustCompile(`-+`)
	return reDash.ReplaceAllString(out, "-")
}

func cutToLen(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return strings.Trim(s, "-")
	}
	return strings.Trim(s[:n], "-")
}

func isTaken(db *gorm.DB, opts SlugOptions, candidate string) (bool, error) {
	if opts.Table == "" || opts.SlugColumn == "" {
		return false, errors.New("slug options: table/slug column required")
	}

	q := db.Table(opts.Table).
		Where(fmt.Sprintf("lower(%s) = lower(?)", opts.SlugColumn), candidate)
	for k, v := range opts.Filters {
		q = q.Where(fmt.Sprintf("%s = ?", k), v)
	}

	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// GenerateUniqueSlug builds a slug from base (or DefaultBase when empty),
// case-insensitively unique within the Filters scope. On collision it tries
// base-2, base-3, ... up to an iteration cap.
func GenerateUniqueSlug(db *gorm.DB, opts SlugOptions, base string) (string, error) {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = DefaultSlugMaxLen
	}

	slug := GenerateSlug(base)
	if slug == "" {
		slug = GenerateSlug(opts.DefaultBase)
	}
	if slug == "" {
		return "", errors.New("slug options: default base required")
	}
	slug = cutToLen(slug, maxLen)

	taken, err := isTaken(db, opts, slug)
	if err != nil {
		return "", err
	}
	if !taken {
		return slug, nil
	}

	for i := 2; i <= 200; i++ {
		suffix := fmt.Sprintf("-%d", i)
		candidate := cutToLen(slug, maxLen-len(suffix)) + suffix
		taken, err := isTaken(db, opts, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", errors.New("could not generate a unique slug")
}
