// Package sqlite stores the analysis library in SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Summary columns are kept alongside the JSON brain payload
// so listing never decodes voxel data.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory; applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.brainview/data/library.db
package sqlite
