package cli

// Version is reported by --version. Release builds set it with
// -ldflags "-X github.com/fsmiamoto/promptcraft/internal/cli.Version=v1.2.3".
var Version = "dev"
