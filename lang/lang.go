// Package lang holds the Thai and English UI strings.
package lang

import (
	"fmt"

	"golang.org/x/text/language"
)

const (
	Th = "th"
	En = "en"
)

var matcher = language.NewMatcher([]language.Tag{language.Thai, language.English})

// Negotiate picks th or en from an Accept-Language header or a Telegram
// language_code. Thai is the fallback.
func Negotiate(accept string) string {
	if accept == "" {
		return Th
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return Th
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Th
	}
	if idx == 1 {
		return En
	}
	return Th
}

// Valid reports whether l is a supported language code.
func Valid(l string) bool {
	return l == Th || l == En
}

// T returns the message for key in l, formatted with args. Unknown
// languages fall back to Thai and unknown keys to the key itself.
func T(l, key string, args ...any) string {
	table, ok := messages[l]
	if !ok {
		table = messages[Th]
	}
	s, ok := table[key]
	if !ok {
		s, ok = messages[Th][key]
		if !ok {
			s = key
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(s, args...)
	}
	return s
}

// Name returns the localized name: nameTh for Thai, nameEn otherwise,
// falling back to whichever is set.
func Name(l, local, english string) string {
	if l == En && english != "" {
		return english
	}
	if local != "" {
		return local
	}
	return english
}
