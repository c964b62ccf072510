// Package daemon boots the application: logging, database, schema
// migration, initial data and the web service.
package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Lelasalasad/new-drisavo/internal/config"
	"github.com/Lelasalasad/new-drisavo/internal/db/dsn"
	"github.com/Lelasalasad/new-drisavo/internal/db/models"
	"github.com/Lelasalasad/new-drisavo/internal/logger"
	"github.com/Lelasalasad/new-drisavo/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start runs the web service until a shutdown signal arrives.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	if err := logger.Init(cfg.Log); err != nil {
		panic(err)
	}

	db, err := openDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
		return nil
	}

	if err = migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
		return nil
	}

	seed(cfg, db)

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db),
	}
}

// openDB connects using the engine selected in the configuration.
// SQLite is for dev and test setups only.
func openDB(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DB.GormEngine {
	case "", "mysql":
		return gorm.Open(gormmysql.Open(dsn.MySQL(cfg)), &gorm.Config{})
	case "postgres":
		return gorm.Open(gormpostgres.Open(dsn.Postgres(cfg)), &gorm.Config{})
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DB.Name), &gorm.Config{})
	}

	return nil, fmt.Errorf("unknown gorm engine %q", cfg.DB.GormEngine)
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Inquiry{},
		&models.Content{},
	)
}

// seed creates the initial admin account when the user table is empty.
func seed(cfg *config.Config, db *gorm.DB) {
	var count int64

	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	email := cfg.Auth.AdminEmail
	if email == "" {
		email = "admin@drisavo.com"
	}

	password := cfg.Auth.AdminPassword
	if password == "" {
		password = "changeme"
	}

	db.Create(
		&models.User{
			Name:     "Admin",
			Email:    email,
			Password: models.HashPassword(password),
			Role:     models.RoleAdmin,
			Active:   true,
		},
	)

	log.Info().Str("email", email).Msg("created initial admin account")
}
