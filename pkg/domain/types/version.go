package types

// Version is the failwhale release version. Overridden at build time via ldflags.
var Version = "0.1.0"
