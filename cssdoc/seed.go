package cssdoc

// Seed creates the default document a new editing session starts with.
// Token attributes are left unset; the token engine will commit known
// properties as soon as the document is stabilized.
func Seed() *Document {
	return NewDocument(
		NewAtRule("@media (min-width: 900px)",
			NewRule("#main",
				NewDeclaration("border", "1px solid black"),
				NewDeclaration("color", "red"),
			),
		),
		NewRule(".foo",
			NewDeclaration("border", "1px solid black"),
		),
	)
}
