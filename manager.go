package sqlseed

import (
	"database/sql"

	"github.com/rs/zerolog/log"
)

// Config carries the connection settings. URL, Username and Password are
// opaque strings whose format is delegated to the configured driver.
type Config struct {
	Driver   string
	URL      string
	Username string
	Password string
}

// Manager owns a single live database connection and performs parameterized
// insert, retrieve, update and delete operations against arbitrary tables.
// A Manager is not safe for concurrent use; drive one instance from one
// caller at a time.
type Manager struct {
	cfg  Config
	conn *sql.DB
}

// New creates a Manager. No connection is made until Connect.
func New(cfg Config) *Manager {
	return &Manager{cfg: cfg}
}

// Connect establishes the database connection and verifies it with a ping.
// An already-held connection is closed first before being replaced. On
// failure a *ConnectionError is returned and no handle is stored.
func (m *Manager) Connect() error {
	if m.conn != nil {
		log.Debug().Str("driver", m.cfg.Driver).Msg("Replacing existing database connection")
		m.Disconnect()
	}

	db, err := sql.Open(m.cfg.Driver, buildDSN(m.cfg))
	if err != nil {
		log.Error().Err(err).Str("driver", m.cfg.Driver).Msg("Failed to open database")
		return &ConnectionError{Driver: m.cfg.Driver, URL: m.cfg.URL, Err: err}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		log.Error().Err(err).Str("driver", m.cfg.Driver).Str("url", m.cfg.URL).Msg("Failed to connect to database")
		return &ConnectionError{Driver: m.cfg.Driver, URL: m.cfg.URL, Err: err}
	}

	// one logical session, no pooling
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	m.conn = db
	log.Info().Str("driver", m.cfg.Driver).Str("url", m.cfg.URL).Msg("Database connection established")
	return nil
}

// Disconnect releases the connection if one is held. Close failures are
// logged and swallowed; there is no recovery action a caller could take.
func (m *Manager) Disconnect() {
	if m.conn == nil {
		return
	}
	if err := m.conn.Close(); err != nil {
		log.Warn().Err(err).Msg("Error closing database connection")
	} else {
		log.Info().Msg("Database connection closed")
	}
	m.conn = nil
}

// Connected reports whether a connection is currently held.
func (m *Manager) Connected() bool {
	return m.conn != nil
}
