package rules

// Registry returns the built-in rules in evaluation order. The raw line
// count check comes first so its finding leads the report even for files
// that fail to parse.
func Registry() []Rule {
	return []Rule{
		LargeFile{},
		LongFunction{},
		DeprecatedImport{},
		TooManyParameters{},
		DeepNesting{},
	}
}
