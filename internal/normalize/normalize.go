// Package normalize turns transport-safe attribute values back into the
// category labels the classifier was trained on.
//
// Values carried in URL path segments cannot contain spaces or periods, so
// clients send "computer_science_and_engineering" and "3?5". The model,
// however, was trained on human-curated labels with irregular casing
// ("Computer Science and Engineering", "Men's Club in CS"). The rules below
// are a fixed table that bridges the two and nothing more.
//
// Two historical strategies exist and they are mutually exclusive:
//
//	Title — restores the curated labels (default).
//	Slug  — lowercases and strips punctuation, for models trained on slugs.
//
// Pick one with New; never run both on the same value.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aanand-mishra/career-predictor/internal/types"
)

const (
	// SpacePlaceholder stands in for a space inside a path segment.
	SpacePlaceholder = "_"
	// DecimalPlaceholder stands in for the decimal point of a GPA.
	DecimalPlaceholder = "?"
)

// Normalizer rewrites raw field values keyed by canonical field name.
// Implementations return a new map and leave the input untouched.
type Normalizer interface {
	Normalize(fields map[string]string) map[string]string
}

// New returns the normalizer registered under name ("title" or "slug").
func New(name string) (Normalizer, error) {
	switch name {
	case "title":
		return Title{}, nil
	case "slug":
		return Slug{}, nil
	}
	return nil, fmt.Errorf("normalize: unknown strategy %q", name)
}

// ─────────────────────────────────────────────────────────────────────────────
// Title restores title-cased labels for major and extra_curricular and the
// decimal point of gpa. Every other field passes through unchanged; the
// student id in particular is opaque and never re-cased.
// ─────────────────────────────────────────────────────────────────────────────
type Title struct{}

func (Title) Normalize(fields map[string]string) map[string]string {
	out := clone(fields)

	if v, ok := out[types.FieldMajor]; ok {
		out[types.FieldMajor] = Major(v)
	}
	if v, ok := out[types.FieldExtraCurricular]; ok {
		out[types.FieldExtraCurricular] = ExtraCurricular(v)
	}
	if v, ok := out[types.FieldGPA]; ok {
		out[types.FieldGPA] = GPA(v)
	}

	return out
}

// Major title-cases a major and keeps the connector "and" lowercase.
//
//	computer_science_and_engineering → Computer Science and Engineering
func Major(v string) string {
	words := titleWords(v)
	for i, w := range words {
		if w == "And" {
			words[i] = "and"
		}
	}
	return strings.Join(words, " ")
}

// ExtraCurricular title-cases an activity and then applies the label
// exceptions: a leading "mens" becomes "Men's", "Of" and "In" are
// lowercased and "Cs" is an acronym.
//
//	mens_club_in_cs → Men's Club in CS
func ExtraCurricular(v string) string {
	words := titleWords(v)
	for i, w := range words {
		switch {
		case i == 0 && strings.EqualFold(w, "mens"):
			words[i] = "Men's"
		case w == "Of":
			words[i] = "of"
		case w == "In":
			words[i] = "in"
		case w == "Cs":
			words[i] = "CS"
		}
	}
	return strings.Join(words, " ")
}

// GPA restores the decimal point: 3?5 → 3.5.
func GPA(v string) string {
	return strings.ReplaceAll(v, DecimalPlaceholder, ".")
}

// titleWords splits v on placeholders and whitespace and title-cases each
// word on its own, so an apostrophe never starts a new word.
func titleWords(v string) []string {
	words := strings.Fields(strings.ReplaceAll(v, SpacePlaceholder, " "))
	caser := cases.Title(language.English)
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return words
}

// ─────────────────────────────────────────────────────────────────────────────
// Slug is the older strategy: every field except the student id is
// lowercased, stripped of punctuation, and has whitespace runs replaced
// with underscores. The GPA only has its decimal point restored, since
// stripping punctuation would otherwise destroy it.
// ─────────────────────────────────────────────────────────────────────────────
type Slug struct{}

var (
	punctuation = regexp.MustCompile(`[^\w\s]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

func (Slug) Normalize(fields map[string]string) map[string]string {
	out := clone(fields)

	for k, v := range out {
		switch k {
		case types.FieldStudentID:
			continue
		case types.FieldGPA:
			out[k] = GPA(v)
		default:
			out[k] = slug(v)
		}
	}

	return out
}

func slug(v string) string {
	v = punctuation.ReplaceAllString(strings.ToLower(v), "")
	return whitespace.ReplaceAllString(v, "_")
}

func clone(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
