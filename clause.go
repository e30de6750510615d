package sqlseed

import "strings"

// Statement text and its parameter list are always built together in one
// left-to-right pass so the Nth placeholder in the text corresponds to the
// Nth argument. Nothing here reorders or deduplicates.

// assignClause renders "col = ?" terms joined by sep and collects the
// parallel argument list in mapping order.
func assignClause(row *Row, sep string) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, row.Len())
	for i, f := range row.list() {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(f.Column)
		sb.WriteString(" = ?")
		args = append(args, f.Value.driverArg())
	}
	return sb.String(), args
}

func insertStatement(table string, values *Row) (string, []any) {
	fields := values.list()
	cols := make([]string, len(fields))
	marks := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, f := range fields {
		cols[i] = f.Column
		marks[i] = "?"
		args[i] = f.Value.driverArg()
	}
	query := "INSERT INTO " + table + " (" + strings.Join(cols, ", ") +
		") VALUES (" + strings.Join(marks, ", ") + ")"
	return query, args
}

func selectStatement(table string, conditions *Row) (string, []any) {
	query := "SELECT * FROM " + table
	if conditions.Len() == 0 {
		return query, nil
	}
	where, args := assignClause(conditions, " AND ")
	return query + " WHERE " + where, args
}

func updateStatement(table string, values, conditions *Row) (string, []any) {
	set, args := assignClause(values, ", ")
	where, condArgs := assignClause(conditions, " AND ")
	query := "UPDATE " + table + " SET " + set + " WHERE " + where
	return query, append(args, condArgs...)
}

func deleteStatement(table string, conditions *Row) (string, []any) {
	query := "DELETE FROM " + table
	if conditions.Len() == 0 {
		return query, nil
	}
	where, args := assignClause(conditions, " AND ")
	return query + " WHERE " + where, args
}
