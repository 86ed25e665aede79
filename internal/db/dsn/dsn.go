// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net/url"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/botpanel/botpanel/internal/config"
)

// Create builds the MySQL Data Source Name from the configuration.
func Create(dbCfg *config.Config) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Host,
		dbCfg.DB.Port,
		dbCfg.DB.Name,
		dbCfg.DB.Extras,
	)

	return out
}

// Postgres builds a postgres:// connection URI from the configuration.
// It is accepted by both pgx (gorm) and the fiber postgres session storage.
func Postgres(dbCfg *config.Config) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(dbCfg.DB.User, dbCfg.DB.Password),
		Host:     fmt.Sprintf("%s:%d", dbCfg.DB.Host, dbCfg.DB.Port),
		Path:     "/" + dbCfg.DB.Name,
		RawQuery: dbCfg.DB.Extras,
	}

	return u.String()
}

// Dialector returns the gorm dialector for the configured engine.
func Dialector(dbCfg *config.Config) gorm.Dialector {
	switch dbCfg.DB.GormEngine {
	case config.EngineMySQL:
		return mysql.Open(Create(dbCfg))
	case config.EnginePostgres:
		return postgres.Open(Postgres(dbCfg))
	default:
		return sqlite.Open(dbCfg.DB.Name)
	}
}
