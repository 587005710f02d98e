package sqlparam

import (
	"regexp"
	"strings"
)

// Database identifies the server flavor behind a connection, sniffed from
// its reported version string.
type Database uint8

const (
	MySQL Database = iota
	Drizzle
	MariaDB
)

func (d Database) String() string {
	switch d {
	case Drizzle:
		return "Drizzle"
	case MariaDB:
		return "MariaDB"
	default:
		return "MySQL"
	}
}

// Drizzle versions are date-based, e.g. "2011.03.13".
var drizzleVersion = regexp.MustCompile(`^201\d\..*`)

// DatabaseFromVersion maps a server version string to the database it
// belongs to. Unrecognized versions are treated as MySQL.
func DatabaseFromVersion(version string) Database {
	if drizzleVersion.MatchString(version) {
		return Drizzle
	}
	if strings.Contains(version, "MariaDB") {
		return MariaDB
	}
	return MySQL
}
