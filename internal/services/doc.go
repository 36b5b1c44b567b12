// Package services turns query rows into an Ansible inventory.
//
// # Service Dependency Graph
//
//	Handlers / CLI
//	    │
//	    ▼
//	InventoryService ──► Store (Conn, Executor)
//	    ├── RowMapper         row ──► host, vars, groups | skip
//	    ├── InventoryBuilder  merge hosts, union groups, stats
//	    └── Recorder          build metrics (optional)
//
// # InventoryService
//
// Build runs every input in declaration order on a single connection.
// A build is all or nothing for required inputs:
//
//	┌────────────────────────────┬──────────────────────────────────────┐
//	│ Situation                  │ Outcome                              │
//	├────────────────────────────┼──────────────────────────────────────┤
//	│ required input query fails │ build aborted, QueryError returned   │
//	│ optional input query fails │ warning logged, input contributes    │
//	│                            │ nothing, build continues             │
//	│ context canceled           │ ctx.Err() returned                   │
//	│ row cannot produce a host  │ row skipped, counted by reason       │
//	└────────────────────────────┴──────────────────────────────────────┘
//
// # RowMapper
//
// Mapping a row happens in this order:
//
//  1. transforms: the regex runs on the stringified field; the first
//     capture group (or the whole match) is stored under "out". A missing
//     field or a non matching value skips the row.
//  2. host name: host_field, stringified and trimmed. Missing or empty
//     skips the row.
//  3. vars: each var_fields column is copied under its variable name.
//     NULL leaves the variable undefined, a missing column yields null.
//  4. groups: group_fields values, then group_templates rendered against
//     the row. Empty names and "_meta" are ignored, duplicates collapse.
//
// # InventoryBuilder
//
// Hosts seen in several rows or inputs are merged: variables are last
// write wins, group membership is a union. Hosts keep first seen order
// inside a group.
//
// # Value Coercion
//
//	┌──────────────────┬──────────────────────┬────────────────────┐
//	│ Column type      │ As name              │ As variable        │
//	├──────────────────┼──────────────────────┼────────────────────┤
//	│ string, []byte   │ as is                │ string             │
//	│ integers         │ base 10              │ int64              │
//	│ floats           │ shortest repr        │ float64            │
//	│ bool             │ "true" / "false"     │ bool               │
//	│ time.Time        │ RFC 3339             │ RFC 3339 string    │
//	│ NULL             │ no name              │ undefined          │
//	└──────────────────┴──────────────────────┴────────────────────┘
package services
