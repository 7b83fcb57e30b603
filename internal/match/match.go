// Package match decides whether a pantry item satisfies an ingredient name.
package match

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize trims surrounding whitespace and lower-cases s with the full
// Unicode mapping, including the final-sigma rule.
func Normalize(s string) string {
	// A Caser is stateful, so one is built per call.
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// Matches reports whether a pantry item named pantryName satisfies an
// ingredient named ingredientName. Names match when, after normalization,
// they are equal or either one contains the other. The rule over-matches on
// purpose ("egg" satisfies "eggplant") so that "tomato" covers "tomatoes"
// and "onion" covers "red onion".
//
// Matches does not special-case empty names; callers skip ingredients whose
// normalized name is empty.
func Matches(pantryName, ingredientName string) bool {
	p := Normalize(pantryName)
	i := Normalize(ingredientName)
	return p == i || strings.Contains(p, i) || strings.Contains(i, p)
}

// Equal reports whether a and b are the same name after normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
