package madhouse

// Version is the release of the harness. It is overridden at build time with
// -ldflags "-X github.com/aretw0/madhouse.Version=...".
var Version = "0.1.0-dev"
