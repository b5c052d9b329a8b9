// Package regions implements region metadata lookups.
//
// Catalog serves the region descriptions and the emotion-to-region mapping
// compiled into the binary. Client queries a remote service exposing
// GET /api/info/regions?region=KEY and throttles itself with a token bucket.
package regions
