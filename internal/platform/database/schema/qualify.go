package schema

// Qualify prefixes every column with a table alias, for joined projections.
func Qualify(alias string, columns []string) []string {
	qualified := make([]string, len(columns))
	for index, column := range columns {
		qualified[index] = alias + "." + column
	}
	return qualified
}
