package sanitizer

import (
	"regexp"
	"strings"
)

// Strategy is one text normalization step; a Pipeline runs them in order.
type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	recordBreakers = strings.NewReplacer("\n", " ", "\r", " ", "|", " ")
	reMultiSpace   = regexp.MustCompile(`  +`)
)

func stripRecordBreakers(s string) string {
	return recordBreakers.Replace(s)
}

func collapseSpaces(s string) string {
	return reMultiSpace.ReplaceAllString(s, " ")
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

func trimAndLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Field makes free text safe to embed in a pipe-delimited record: the
// delimiter and line breaks become spaces, runs of spaces collapse.
func Field(input string) string {
	p := Pipeline{
		stripRecordBreakers,
		collapseSpaces,
		trim,
	}
	return p.Apply(input)
}

// Email normalizes an address for comparison and storage keys.
func Email(input string) string {
	return trimAndLower(input)
}

// Code normalizes promo codes: trimmed and uppercased.
func Code(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}

// SanitizeSlice applies a strategy to every value, dropping empties and
// duplicates while keeping first-seen order.
func SanitizeSlice(values []string, strategy Strategy) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, v := range values {
		s := strategy(v)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}
