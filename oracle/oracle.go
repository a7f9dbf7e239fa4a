/*
Package oracle defines the interface to a CSS property and value database.

The editor core never interprets CSS semantics itself. It asks an oracle
whether a property name is known, which property names complete a typed
prefix, and which values are legal for a property. Package cssdata
provides a table-driven implementation.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package oracle

// Oracle answers questions about CSS properties and their values.
//
// CompletionsForProperty returns property names starting with prefix
// (case-sensitive), in the oracle's own order. LegalValues returns the
// enumerable values of a property; ok is false if the oracle does not
// know of an enumeration for the property.
type Oracle interface {
	IsKnownProperty(name string) bool
	CompletionsForProperty(prefix string) []string
	LegalValues(name string) (values []string, ok bool)
}

// IsLegalValue checks if value is one of the enumerated values of
// property name.
func IsLegalValue(o Oracle, name, value string) bool {
	values, ok := o.LegalValues(name)
	if !ok {
		return false
	}
	return IndexOf(values, value) >= 0
}

// IndexOf returns the position of value within values, or -1.
func IndexOf(values []string, value string) int {
	for i, v := range values {
		if v == value {
			return i
		}
	}
	return -1
}
