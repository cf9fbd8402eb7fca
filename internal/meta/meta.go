// Package meta holds identifying constants shared across the CLI.
package meta

// AppName is the program name used to derive config and cache paths
// (~/.<AppName>/...) and the BANKCTL_* environment variable prefix.
const AppName = "bankctl"
