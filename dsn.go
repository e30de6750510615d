package sqlseed

import "net/url"

// buildDSN folds the opaque credentials into the driver DSN. Each driver
// family has its own credential syntax; unrecognized drivers get the URL
// untouched and are expected to carry credentials inline.
func buildDSN(cfg Config) string {
	switch cfg.Driver {
	case "sqlite", "sqlite3":
		// file path DSN, no credential syntax
		return cfg.URL
	case "postgres":
		return postgresDSN(cfg)
	case "mysql":
		return mysqlDSN(cfg)
	default:
		return cfg.URL
	}
}

func postgresDSN(cfg Config) string {
	if cfg.Username == "" {
		return cfg.URL
	}
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return cfg.URL
	}
	if cfg.Password != "" {
		u.User = url.UserPassword(cfg.Username, cfg.Password)
	} else {
		u.User = url.User(cfg.Username)
	}
	return u.String()
}

func mysqlDSN(cfg Config) string {
	if cfg.Username == "" {
		return cfg.URL
	}
	cred := cfg.Username
	if cfg.Password != "" {
		cred += ":" + cfg.Password
	}
	return cred + "@" + cfg.URL
}
