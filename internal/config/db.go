package config

const (
	// EngineSQLite stores everything in a local sqlite file (Name is the file path).
	EngineSQLite = "sqlite"
	// EngineMySQL uses a MySQL or MariaDB server.
	EngineMySQL = "mysql"
	// EnginePostgres uses a PostgreSQL server.
	EnginePostgres = "postgres"
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	GormEngine string
}
