package server

// Version and Commit are overridden at build time
var (
	Version = "dev"
	Commit  = "unknown"
)
