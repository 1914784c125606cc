package planner

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/aretw0/planner.Version=...".
var Version = "0.1.0"
