package sqlseed

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// newTestManager creates a sqlite database with a users table and returns a
// connected Manager.
func newTestManager(t *testing.T) *Manager {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	createSchema(t, dbPath)

	m := New(Config{Driver: "sqlite", URL: dbPath})
	if err := m.Connect(); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(m.Disconnect)
	return m
}

func createSchema(t *testing.T, dbPath string) {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			email TEXT
		)
	`)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

func TestOperationsRequireConnection(t *testing.T) {
	m := New(Config{Driver: "sqlite", URL: ":memory:"})
	row := NewRow().Set("username", Text("alice"))

	if _, err := m.Insert("users", row); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Insert error = %v, want ErrNotConnected", err)
	}
	if _, err := m.Retrieve("users", row); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Retrieve error = %v, want ErrNotConnected", err)
	}
	if _, err := m.Update("users", row, row); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Update error = %v, want ErrNotConnected", err)
	}
	if _, err := m.Delete("users", row); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Delete error = %v, want ErrNotConnected", err)
	}
}

func TestConnectFailureStoresNoHandle(t *testing.T) {
	m := New(Config{Driver: "no-such-driver", URL: "whatever"})
	err := m.Connect()
	if err == nil {
		t.Fatal("expected Connect to fail for an unknown driver")
	}
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("error = %T, want *ConnectionError", err)
	}
	if m.Connected() {
		t.Error("manager reports connected after a failed Connect")
	}
}

func TestConnectFailsOnUnreachableDatabase(t *testing.T) {
	// parent directory does not exist, ping must fail
	m := New(Config{Driver: "sqlite", URL: filepath.Join(t.TempDir(), "missing", "x.db")})
	err := m.Connect()
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("error = %v, want *ConnectionError", err)
	}
}

func TestInsertRetrieveUpdateDeleteRoundTrip(t *testing.T) {
	m := newTestManager(t)

	key, err := m.Insert("users", NewRow().
		Set("username", Text("alice")).
		Set("email", Text("a@x.com")))
	if err != nil {
		t.Fatalf("failed to insert: %v", err)
	}
	if key <= 0 {
		t.Fatalf("generated key = %d, want positive", key)
	}

	byName := NewRow().Set("username", Text("alice"))

	rows, err := m.Retrieve("users", byName)
	if err != nil {
		t.Fatalf("failed to retrieve: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("retrieved %d rows, want 1", len(rows))
	}
	if v, _ := rows[0].Get("email"); !v.Equal(Text("a@x.com")) {
		t.Errorf("email = %v, want a@x.com", v)
	}
	if v, _ := rows[0].Get("id"); !v.Equal(Int(key)) {
		t.Errorf("id = %v, want %d", v, key)
	}

	affected, err := m.Update("users", NewRow().Set("email", Text("b@x.com")), byName)
	if err != nil {
		t.Fatalf("failed to update: %v", err)
	}
	if affected != 1 {
		t.Fatalf("update affected %d rows, want 1", affected)
	}

	rows, err = m.Retrieve("users", byName)
	if err != nil {
		t.Fatalf("failed to retrieve after update: %v", err)
	}
	if v, _ := rows[0].Get("email"); !v.Equal(Text("b@x.com")) {
		t.Errorf("email after update = %v, want b@x.com", v)
	}

	deleted, err := m.Delete("users", byName)
	if err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("delete affected %d rows, want 1", deleted)
	}

	rows, err = m.Retrieve("users", byName)
	if err != nil {
		t.Fatalf("failed to retrieve after delete: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("retrieved %d rows after delete, want none", len(rows))
	}
}

func TestRetrieveWithoutConditionsReturnsAllRows(t *testing.T) {
	m := newTestManager(t)

	for _, name := range []string{"alice", "bob", "carol"} {
		if _, err := m.Insert("users", NewRow().Set("username", Text(name))); err != nil {
			t.Fatalf("failed to insert %s: %v", name, err)
		}
	}

	rows, err := m.Retrieve("users", nil)
	if err != nil {
		t.Fatalf("failed to retrieve: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("retrieved %d rows, want 3", len(rows))
	}
}

func TestDeleteNoMatchReturnsZero(t *testing.T) {
	m := newTestManager(t)

	deleted, err := m.Delete("users", NewRow().Set("username", Text("nobody")))
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted %d rows, want 0", deleted)
	}
}

func TestUpdateNoMatchReturnsZero(t *testing.T) {
	m := newTestManager(t)

	affected, err := m.Update("users",
		NewRow().Set("email", Text("x@x.com")),
		NewRow().Set("username", Text("nobody")))
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if affected != 0 {
		t.Errorf("updated %d rows, want 0", affected)
	}
}

func TestEmptyMappingsAreRejected(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.Insert("users", NewRow()); !errors.Is(err, ErrNoColumns) {
		t.Errorf("Insert error = %v, want ErrNoColumns", err)
	}
	if _, err := m.Update("users", NewRow(), NewRow().Set("id", Int(1))); !errors.Is(err, ErrNoColumns) {
		t.Errorf("Update error = %v, want ErrNoColumns", err)
	}
	if _, err := m.Update("users", NewRow().Set("email", Null()), NewRow()); !errors.Is(err, ErrNoConditions) {
		t.Errorf("Update error = %v, want ErrNoConditions", err)
	}
}

func TestExecutionErrorOnUnknownTable(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Retrieve("no_such_table", nil)
	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("error = %v, want *ExecutionError", err)
	}
	if execErr.Op != "retrieve" || execErr.Table != "no_such_table" {
		t.Errorf("error context = %q %q", execErr.Op, execErr.Table)
	}
	if execErr.Unwrap() == nil {
		t.Error("driver error not attached")
	}
}

func TestNullValueRoundTrip(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.Insert("users", NewRow().
		Set("username", Text("alice")).
		Set("email", Null())); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	rows, err := m.Retrieve("users", NewRow().Set("username", Text("alice")))
	if err != nil {
		t.Fatalf("failed to retrieve: %v", err)
	}
	if v, ok := rows[0].Get("email"); !ok || v.Kind() != KindNull {
		t.Errorf("email = %v, want null", v)
	}
}

func TestConnectReplacesExistingConnection(t *testing.T) {
	m := newTestManager(t)

	if err := m.Connect(); err != nil {
		t.Fatalf("reconnect failed: %v", err)
	}
	if !m.Connected() {
		t.Fatal("manager not connected after reconnect")
	}
	if _, err := m.Retrieve("users", nil); err != nil {
		t.Errorf("retrieve after reconnect failed: %v", err)
	}
}

func TestDisconnectIsIdempotent(t *testing.T) {
	m := newTestManager(t)
	m.Disconnect()
	m.Disconnect()
	if m.Connected() {
		t.Error("manager still connected after Disconnect")
	}
}
