// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the check lifecycle (load, build, set up,
// report), decoupled from any specific entrypoint like a CLI.
package app
