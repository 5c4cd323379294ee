package postgres

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"roomdesk/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

var ErrUnavailable = errors.New("database unavailable")

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres

	return &Connection{
		Read: CreatePostgresConnection("read", descriptor(pg.Read.Username, pg.Read.Password, pg.Read.Host, pg.Read.Port,
			DBName(config, pg.Read.Name), pg.Read.SSLMode), pg.MaxRetry, pg.RetryWaitTime),
		Write: CreatePostgresConnection("write", descriptor(pg.Write.Username, pg.Write.Password, pg.Write.Host, pg.Write.Port,
			DBName(config, pg.Write.Name), pg.Write.SSLMode), pg.MaxRetry, pg.RetryWaitTime),
	}
}

// DBName returns the database name with prefix if configured
func DBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// WriteURL is the connection URL of the write database, used by migrations.
func WriteURL(config *config.Config) string {
	pg := config.DB.Postgres.Write

	return descriptor(pg.Username, pg.Password, pg.Host, pg.Port, DBName(config, pg.Name), pg.SSLMode)
}

func descriptor(username, password, host, port, dbName, sslMode string) string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(username, password),
		Host:     net.JoinHostPort(host, port),
		Path:     dbName,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}

	return dsn.String()
}

// CreatePostgresConnection connects with retries and returns nil when every attempt fails.
func CreatePostgresConnection(name, dsn string, maxRetry, waitTime int) *sqlx.DB {
	for retry := 0; retry < max(maxRetry, 1); retry++ {
		sqlDB, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			log.Info().Str("name", name).Msg("Connected to database")

			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB
		}

		log.Error().
			Err(err).
			Str("name", name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	log.Error().Str("name", name).Msg("Giving up on database, receipts are disabled")

	return nil
}

// Available reports whether both pools are connected.
func (c *Connection) Available() error {
	if c == nil || c.Read == nil || c.Write == nil {
		return fmt.Errorf("postgres: %w", ErrUnavailable)
	}

	return nil
}
