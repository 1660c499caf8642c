// Package services holds the catalog of backing services that can be added
// to a generated compose.yaml.
package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownServiceType is returned for a type missing from the catalog.
	ErrUnknownServiceType = errors.New("unknown service type")

	// ErrServiceExists is returned when compose.yaml already defines the service.
	ErrServiceExists = errors.New("service already exists")

	// ErrNoComposeFile is returned when there is no compose.yaml to add to.
	ErrNoComposeFile = errors.New("compose.yaml not found")
)

// Definition describes one backing service.
type Definition struct {
	Type        string
	Description string
	Image       string
	Port        int
	Env         map[string]string
	DataPath    string // container path persisted in a named volume
}

var catalog = map[string]Definition{
	"postgres": {
		Type:        "postgres",
		Description: "PostgreSQL relational database",
		Image:       "postgres:16-alpine",
		Port:        5432,
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "app",
		},
		DataPath: "/var/lib/postgresql/data",
	},
	"mysql": {
		Type:        "mysql",
		Description: "MySQL relational database",
		Image:       "mysql:8.4",
		Port:        3306,
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "mysql",
			"MYSQL_DATABASE":      "app",
		},
		DataPath: "/var/lib/mysql",
	},
	"redis": {
		Type:        "redis",
		Description: "Redis in-memory cache",
		Image:       "redis:7-alpine",
		Port:        6379,
		DataPath:    "/data",
	},
	"mongodb": {
		Type:        "mongodb",
		Description: "MongoDB document database",
		Image:       "mongo:7",
		Port:        27017,
		Env: map[string]string{
			"MONGO_INITDB_DATABASE": "app",
		},
		DataPath: "/data/db",
	},
}

// aliases map common alternate names onto catalog types
var aliases = map[string]string{
	"postgresql": "postgres",
	"pg":         "postgres",
	"mongo":      "mongodb",
	"mariadb":    "mysql",
}

// Lookup returns the catalog entry for serviceType (case-insensitive).
func Lookup(serviceType string) (Definition, error) {
	key := strings.ToLower(strings.TrimSpace(serviceType))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	def, ok := catalog[key]
	if !ok {
		return Definition{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownServiceType, serviceType, strings.Join(Types(), ", "))
	}
	return def, nil
}

// Types lists catalog types alphabetically.
func Types() []string {
	types := make([]string, 0, len(catalog))
	for t := range catalog {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// All returns every catalog entry, sorted by type.
func All() []Definition {
	defs := make([]Definition, 0, len(catalog))
	for _, t := range Types() {
		defs = append(defs, catalog[t])
	}
	return defs
}
