package main

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	projectRoot string
	configPath  string
	verbose     bool
}
