package identity

import (
	"context"
	"database/sql"
	"io/fs"
	"time"

	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func init() {
	persistence.RegisterModel((*Credential)(nil))
	persistence.RegisterModel((*User)(nil))
	persistence.RegisterModel((*ProfileNotes)(nil))
}

// PersistenceConfig holds the database connection options
type PersistenceConfig struct {
	Debug       bool          `json:"debug"`
	Driver      string        `json:"driver"`
	Server      string        `json:"server"`
	PingTimeout time.Duration `json:"ping_timeout"`
	Seed        bool          `json:"seed"`
}

func (c PersistenceConfig) GetDebug() bool { return c.Debug }
func (c PersistenceConfig) GetDriver() string { return c.Driver }
func (c PersistenceConfig) GetServer() string { return c.Server }

func (c PersistenceConfig) GetOtelIdentifier() string { return "" }

func (c PersistenceConfig) GetPingTimeout() time.Duration {
	if c.PingTimeout == 0 {
		return 5 * time.Second
	}
	return c.PingTimeout
}

// SetupPersistence opens the database, runs the packaged migrations,
// optionally seeds the fixtures, and returns the managed bun handle
func SetupPersistence(ctx context.Context, cfg PersistenceConfig) (*bun.DB, error) {
	db, err := sql.Open(sqliteshim.ShimName, cfg.GetServer())
	if err != nil {
		return nil, err
	}

	client, err := persistence.New(cfg, db, sqlitedialect.New())
	if err != nil {
		return nil, err
	}

	migrations, err := fs.Sub(GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return nil, err
	}
	client.RegisterDialectMigrations(
		migrations,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("postgres", "sqlite"),
	)
	if err := client.ValidateDialects(ctx); err != nil {
		return nil, err
	}

	if err := client.Migrate(ctx); err != nil {
		return nil, err
	}

	if cfg.Seed {
		client.RegisterFixtures(GetFixturesFS())
		if err := client.Seed(ctx); err != nil {
			return nil, err
		}
	}

	return client.DB(), nil
}
