package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cmds := newCommandSet(
		&CheckDepsCommand{},
		&DoctorCommand{},
		&HealthCheckCommand{},
		&MigrateCommand{},
		&WaitForDBCommand{},
	)

	if len(os.Args) < 2 {
		cmds.usage(os.Stderr)
		os.Exit(2)
	}

	cmd, found := cmds.lookup(os.Args[1])
	if !found {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		cmds.usage(os.Stderr)
		os.Exit(2)
	}

	if err := cmd.Run(os.Args[2:]); err != nil {
		fail("%s: %v", cmd.Name(), err)
		os.Exit(1)
	}
}
