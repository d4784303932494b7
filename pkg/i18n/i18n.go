// Package i18n holds the localized user-facing strings and resolves the
// caller's language.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam query parameter used to select a language
	LangParam = "lang"
	// LangCookieName cookie storing the language preference
	LangCookieName = "lang"
)

var (
	supported = []language.Tag{language.English, language.Hebrew}
	matcher   = language.NewMatcher(supported)
)

// Supported returns the supported language tags, default first.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Default returns the default language tag.
func Default() language.Tag {
	return supported[0]
}

// Parse matches a single language value against the supported tags.
func Parse(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Default(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return Default(), false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Default(), false
	}
	return supported[idx], true
}

// ResolveTag picks the language from the query value, then the cookie value,
// then the Accept-Language header.
func ResolveTag(query, cookie, acceptLanguage string) language.Tag {
	if tag, ok := Parse(query); ok {
		return tag
	}
	if tag, ok := Parse(cookie); ok {
		return tag
	}
	if accept := strings.TrimSpace(acceptLanguage); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			if _, idx, conf := matcher.Match(tags...); conf != language.No {
				return supported[idx]
			}
		}
	}
	return Default()
}

// Printer returns a message printer for the tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// T translates key for tag.
func T(tag language.Tag, key string, args ...interface{}) string {
	return Printer(tag).Sprintf(key, args...)
}
