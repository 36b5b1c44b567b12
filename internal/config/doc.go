// Package config defines the runtime settings of nd-inventory and loads the
// inputs document that drives every inventory build.
//
// Settings are organized into logical sections and filled from defaults,
// an optional settings file, NDINV_* environment variables and command flags
// (lowest to highest precedence). Defaults are declared with creasty/defaults tags.
//
// # Configuration Structure
//
//	Configuration
//	├── Database       - Source database connection
//	├── Inventory      - Inputs document and output format
//	├── Server         - HTTP server settings (serve command)
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Database Configuration
//
//	┌──────────┬─────────────┬──────────────────────────────────────────────┐
//	│ Field    │ Default     │ Description                                  │
//	├──────────┼─────────────┼──────────────────────────────────────────────┤
//	│ Driver   │ "postgres"  │ postgres (pgx), duckdb or sqlite             │
//	│ DSN      │ ""          │ Full connection string, overrides the parts  │
//	│ Host     │ "localhost" │ Postgres host                                │
//	│ Port     │ 5432        │ Postgres port                                │
//	│ Name     │ "netdisco"  │ Database name, or file path for file drivers │
//	│ User     │ "netdisco"  │ Postgres user                                │
//	│ Password │ ""          │ Postgres password                            │
//	│ SSLMode  │ "disable"   │ Postgres sslmode                             │
//	└──────────┴─────────────┴──────────────────────────────────────────────┘
//
// # Inventory Configuration
//
//	┌────────────┬───────────┬────────────────────────────────────────┐
//	│ Field      │ Default   │ Description                            │
//	├────────────┼───────────┼────────────────────────────────────────┤
//	│ InputsFile │ "inv.yml" │ Path to the inputs document            │
//	│ Format     │ "json"    │ Output format: json or yaml            │
//	│ Pretty     │ false     │ Indent JSON output                     │
//	└────────────┴───────────┴────────────────────────────────────────┘
//
// # Server Configuration
//
//	┌────────────┬─────────┬────────────────────────────────────────┐
//	│ Field      │ Default │ Description                            │
//	├────────────┼─────────┼────────────────────────────────────────┤
//	│ ServerMode │ "dev"   │ Server mode: "prod" or "dev"           │
//	│ HTTPPort   │ 8000    │ HTTP server listen port                │
//	└────────────┴─────────┴────────────────────────────────────────┘
//
// # Inputs Document
//
// The inputs document is a YAML (or JSON) sequence. Each entry describes one
// query and how its rows become hosts, groups and variables:
//
//	- name: switches
//	  query: SELECT name AS hostname, site, ip FROM device
//	  host_field: hostname
//	  group_fields: [site]
//	  group_templates: ["{{ .site }}_{{ .vendor }}"]
//	  var_fields: {ip: ansible_host}
//	  required: true
//	  params: []
//	  transforms:
//	    - {field: hostname, regex: '^([a-z]+)', out: role}
//
// group_templates use Go text/template syntax rendered against the row's
// columns: a column is referenced as {{ .site }}. Jinja style references
// such as {{ site }} from older inventories must be rewritten, they fail to
// parse and the document is rejected.
//
// Transform regexes are anchored at the start of the value: "(\d+)" does
// not match "sw12", write ".*?(\d+)" to search.
//
// name, query and host_field are mandatory. required defaults to true,
// group_fields, group_templates and var_fields default to empty.
// Unknown keys, duplicate names, invalid regexes and unparsable templates
// are rejected with a ConfigError before any query runs.
//
// # Debug Logging
//
// DebugMap returns the settings with secrets redacted:
//
//	zap.S().Debugw("configuration loaded", "config", cfg.DebugMap())
package config
