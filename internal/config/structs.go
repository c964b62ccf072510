package config

import (
	"github.com/Lelasalasad/new-drisavo/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Auth      Auth
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool   // use clean path middleware to allow multi slash requests
	DisableRecover bool   // disable recover middleware
	Domain         string // domain name for the webserver
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
	CORSOrigins    string // comma separated list of allowed origins, empty = allow all
}

// Auth holds token and bootstrap credentials settings.
type Auth struct {
	JWTSecret        string // signing secret for bearer tokens
	TokenExpiryHours int    // token lifetime in hours
	AdminEmail       string // email of the seeded admin account
	AdminPassword    string // initial password of the seeded admin account
}
