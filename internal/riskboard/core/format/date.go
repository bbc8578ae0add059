package format

import (
	"strings"
	"time"

	"golang.org/x/text/language"
)

// dateLayouts holds the short date layout of each supported locale.
var dateLayouts = map[language.Tag]string{
	language.AmericanEnglish: "1/2/2006",
	language.BritishEnglish:  "02/01/2006",
	language.German:          "2.1.2006",
	language.French:          "02/01/2006",
	language.Japanese:        "2006/1/2",
}

var (
	supportedLocales = []language.Tag{
		language.AmericanEnglish, // first entry is the fallback
		language.BritishEnglish,
		language.German,
		language.French,
		language.Japanese,
	}
	localeMatcher = language.NewMatcher(supportedLocales)
)

// parseLayouts are tried in order. The first one is a calendar date and is
// never shifted between time zones.
var parseLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// DateFormatter renders service dates for one locale.
type DateFormatter struct {
	layout string
	loc    *time.Location
}

// NewDateFormatter returns a formatter for the closest supported locale;
// unsupported locales fall back to en-US. Timestamps carrying a zone are
// converted to loc (time.Local when nil) before formatting.
func NewDateFormatter(locale string, loc *time.Location) *DateFormatter {
	if loc == nil {
		loc = time.Local
	}

	tag := language.AmericanEnglish
	if t, err := language.Parse(locale); err == nil {
		_, idx, conf := localeMatcher.Match(t)
		if conf != language.No {
			tag = supportedLocales[idx]
		}
	}

	return &DateFormatter{layout: dateLayouts[tag], loc: loc}
}

var defaultDates = NewDateFormatter("en-US", time.UTC)

// Format renders s. Empty input renders "-", input that is not a date is
// returned unchanged.
func (f *DateFormatter) Format(s string) string {
	if s == "" {
		return "-"
	}

	for _, layout := range parseLayouts {
		t, err := time.Parse(layout, strings.TrimSpace(s))
		if err != nil {
			continue
		}
		if layout == time.RFC3339Nano {
			t = t.In(f.loc)
		}
		return t.Format(f.layout)
	}

	return s
}

// FormatDate formats s with the en-US layout: "2023-05-01" -> "5/1/2023".
func FormatDate(s string) string {
	return defaultDates.Format(s)
}
