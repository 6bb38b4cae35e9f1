package version

// Name for this
const Name string = "pagecast"

// Version for this
var Version = "0.1.0" //nolint:gochecknoglobals

// Revision for this
var Revision = "HEAD" //nolint:gochecknoglobals
