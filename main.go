// Package main implements the tableau CLI, which solves linear programs
// with the two-phase simplex method.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"q.log/tableau/simplex"
)

// Exit codes.
const (
	exitOK         = 0
	exitError      = 1
	exitInfeasible = 2
	exitUnbounded  = 3
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute runs the root command with args and maps its outcome to an exit
// code. Solver outcomes have already been reported on stdout; any other
// error is printed to stderr.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, simplex.ErrInfeasible):
		return exitInfeasible
	case errors.Is(err, simplex.ErrUnbounded):
		return exitUnbounded
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitError
}
