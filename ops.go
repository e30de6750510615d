package sqlseed

import (
	"github.com/rs/zerolog/log"
)

// NoGeneratedKey is returned by Insert when the driver reports no generated
// key for the statement.
const NoGeneratedKey int64 = -1

// Insert adds one row to table and returns the driver-generated key, or
// NoGeneratedKey when the driver does not report one. The values mapping
// must be non-empty.
func (m *Manager) Insert(table string, values *Row) (int64, error) {
	if m.conn == nil {
		log.Error().Str("table", table).Msg("Insert attempted without an active connection")
		return NoGeneratedKey, ErrNotConnected
	}
	if values.Len() == 0 {
		log.Error().Str("table", table).Msg("Insert attempted with no columns")
		return NoGeneratedKey, ErrNoColumns
	}

	query, args := insertStatement(table, values)
	result, err := m.conn.Exec(query, args...)
	if err != nil {
		log.Error().Err(err).Str("table", table).Str("query", query).Msg("Failed to insert row")
		return NoGeneratedKey, &ExecutionError{Op: "insert", Table: table, Query: query, Err: err}
	}

	key, err := result.LastInsertId()
	if err != nil {
		// drivers without generated-key support (postgres) land here
		log.Debug().Err(err).Str("table", table).Msg("Generated key unavailable")
		return NoGeneratedKey, nil
	}
	return key, nil
}

// Retrieve returns every row of table matching the equality conditions, in
// result-set order. An empty or nil conditions mapping selects the whole
// table. No matches yields an empty slice, not an error.
func (m *Manager) Retrieve(table string, conditions *Row) ([]Row, error) {
	if m.conn == nil {
		log.Error().Str("table", table).Msg("Retrieve attempted without an active connection")
		return nil, ErrNotConnected
	}

	query, args := selectStatement(table, conditions)
	rows, err := m.conn.Query(query, args...)
	if err != nil {
		log.Error().Err(err).Str("table", table).Str("query", query).Msg("Failed to retrieve rows")
		return nil, &ExecutionError{Op: "retrieve", Table: table, Query: query, Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		log.Error().Err(err).Str("table", table).Msg("Failed to read result columns")
		return nil, &ExecutionError{Op: "retrieve", Table: table, Query: query, Err: err}
	}

	results := []Row{}
	raw := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range raw {
		ptrs[i] = &raw[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			log.Error().Err(err).Str("table", table).Msg("Failed to scan row")
			return nil, &ExecutionError{Op: "retrieve", Table: table, Query: query, Err: err}
		}
		row := NewRow()
		for i, col := range cols {
			v, err := valueFrom(raw[i])
			if err != nil {
				log.Error().Err(err).Str("table", table).Str("column", col).Msg("Failed to convert column value")
				return nil, &ExecutionError{Op: "retrieve", Table: table, Query: query, Err: err}
			}
			row.Set(col, v)
		}
		results = append(results, *row)
	}
	if err := rows.Err(); err != nil {
		log.Error().Err(err).Str("table", table).Msg("Failed while iterating rows")
		return nil, &ExecutionError{Op: "retrieve", Table: table, Query: query, Err: err}
	}
	return results, nil
}

// Update sets the given values on every row of table matching the equality
// conditions and returns the affected-row count (0 when nothing matched).
// Both mappings must be non-empty; bound parameters are the values first,
// then the conditions.
func (m *Manager) Update(table string, values, conditions *Row) (int64, error) {
	if m.conn == nil {
		log.Error().Str("table", table).Msg("Update attempted without an active connection")
		return 0, ErrNotConnected
	}
	if values.Len() == 0 {
		log.Error().Str("table", table).Msg("Update attempted with no columns")
		return 0, ErrNoColumns
	}
	if conditions.Len() == 0 {
		log.Error().Str("table", table).Msg("Update attempted with no conditions")
		return 0, ErrNoConditions
	}

	query, args := updateStatement(table, values, conditions)
	result, err := m.conn.Exec(query, args...)
	if err != nil {
		log.Error().Err(err).Str("table", table).Str("query", query).Msg("Failed to update rows")
		return 0, &ExecutionError{Op: "update", Table: table, Query: query, Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Error().Err(err).Str("table", table).Msg("Failed to read affected-row count")
		return 0, &ExecutionError{Op: "update", Table: table, Query: query, Err: err}
	}
	return affected, nil
}

// Delete removes every row of table matching the equality conditions and
// returns the deleted-row count (0 when nothing matched). An empty or nil
// conditions mapping deletes the whole table.
func (m *Manager) Delete(table string, conditions *Row) (int64, error) {
	if m.conn == nil {
		log.Error().Str("table", table).Msg("Delete attempted without an active connection")
		return 0, ErrNotConnected
	}

	query, args := deleteStatement(table, conditions)
	result, err := m.conn.Exec(query, args...)
	if err != nil {
		log.Error().Err(err).Str("table", table).Str("query", query).Msg("Failed to delete rows")
		return 0, &ExecutionError{Op: "delete", Table: table, Query: query, Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Error().Err(err).Str("table", table).Msg("Failed to read affected-row count")
		return 0, &ExecutionError{Op: "delete", Table: table, Query: query, Err: err}
	}
	return affected, nil
}
