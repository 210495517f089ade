// Package cli turns the gptgrid command line into an app.Config. The first
// positional argument (or each -p flag) names a pipeline file or directory;
// the remaining arguments are product inputs that replace the run block's
// list. Usage problems are reported as an ExitError with code 2.
package cli
