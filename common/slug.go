package common

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmptySlug = errors.New("slug cannot be empty")
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

func Slugify(input, fallback string) (string, error) {
	slug := slugify(input)
	if slug == "" {
		slug = slugify(fallback)
	}
	if slug == "" {
		return "", ErrEmptySlug
	}
	return slug, nil
}

// ChannelLabel turns a help channel name into an issue label, dropping the first
// matching help suffix: "react-native-help" becomes "react-native".
func ChannelLabel(channel string, suffixes []string, fallback string) (string, error) {
	name := channel
	for _, s := range suffixes {
		if s != "" && strings.HasSuffix(name, s) && len(name) > len(s) {
			name = strings.TrimSuffix(name, s)
			break
		}
	}
	return Slugify(name, fallback)
}

func slugify(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	slug := nonSlugChars.ReplaceAllString(lower, "-")
	return strings.Trim(slug, "-")
}
