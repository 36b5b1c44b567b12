// Package handlers implements the HTTP API of the serve command.
//
// Handlers do not hold inventory state: every request triggers a fresh build,
// submitted to a single-worker scheduler so builds never overlap on the
// source database. A request whose client disconnects cancels its build.
//
// # API Endpoints
//
//	┌────────┬──────────────────────┬──────────────────────────────────────────┐
//	│ Method │ Endpoint             │ Description                              │
//	├────────┼──────────────────────┼──────────────────────────────────────────┤
//	│ GET    │ /api/v1/inventory    │ List document (groups + _meta.hostvars)  │
//	│ GET    │ /api/v1/hosts/{name} │ Host variables, {} for unknown hosts     │
//	└────────┴──────────────────────┴──────────────────────────────────────────┘
//
// Query parameters:
//   - format: json (default) or yaml
//   - pretty: "true" indents JSON output
//
// # Error Handling
//
//	┌───────────────────────────┬────────┬───────────────────────────────────┐
//	│ Error Type                │ Status │ When                              │
//	├───────────────────────────┼────────┼───────────────────────────────────┤
//	│ Invalid format            │ 400    │ format is not json or yaml        │
//	│ QueryError                │ 502    │ A required input's query failed   │
//	│ Internal error            │ 500    │ Connection or encoding failure    │
//	└───────────────────────────┴────────┴───────────────────────────────────┘
//
// Errors use the body { "error": "message" }. No partial inventory is ever returned.
package handlers
