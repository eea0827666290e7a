//go:build nsel

package output

// DefaultFormat is used if no format is given.
const DefaultFormat = "nsel"

// DefaultGeoFormat is used if no format is given and a country database is available.
const DefaultGeoFormat = "gline"
