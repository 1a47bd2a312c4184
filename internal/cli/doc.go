// Package cli turns command-line arguments into an app.Config. Usage
// errors are reported as *ExitError carrying the process exit code.
package cli
