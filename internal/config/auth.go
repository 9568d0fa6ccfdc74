package config

// RosterEntry is one staff member in the seeded credential roster.
// BirthDate uses the dd/mm/yyyy form the registry office provides.
type RosterEntry struct {
	FullName  string `yaml:"full_name"`
	BirthDate string `yaml:"birth_date"`
	Role      string `yaml:"role"`
}

// AuthConfig holds the externalized credential roster. The roster is only
// used to seed the users table when it is empty; day-to-day authentication
// reads the database.
type AuthConfig struct {
	AdminUsername string        `yaml:"admin_username"`
	EmailDomain   string        `yaml:"email_domain"`
	Roster        []RosterEntry `yaml:"roster"`
}

// ReportsConfig controls report bucketing.
type ReportsConfig struct {
	// Timezone is the civil time zone all date/hour bucketing is computed
	// in, regardless of the server's own zone.
	Timezone string `yaml:"timezone"`
}
