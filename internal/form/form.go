// Package form implements the delimited multi-value encoding used to carry
// option lists and multi-selection answers through hidden form fields.
package form

import "strings"

// Delimiter is the literal separator of the wire format. It must be
// preserved exactly; the encoding assumes no legitimate value ever contains
// this substring.
const Delimiter = "ngf|-|ngf"

// JoinValues serializes a value list into a single form field.
func JoinValues(values []string) string {
	return strings.Join(values, Delimiter)
}

// SplitValues parses a delimited form field back into its value list,
// dropping empty items.
func SplitValues(field string) []string {
	parts := strings.Split(field, Delimiter)
	values := parts[:0]
	for _, p := range parts {
		if p != "" {
			values = append(values, p)
		}
	}
	return values
}
