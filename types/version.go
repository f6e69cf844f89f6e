package types

// Version is the canonical project version.
// The CLI, the archive record format, and the adapter event shape all
// share this version (lockstep versioning).
const Version = "0.3.0"
