package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/rs/zerolog/log"
)

// RunExtension attempts to find and execute an external arthik-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
//
// The global flags are passed to the extension as ARTHIK_* environment variables.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "arthik-" + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		log.Debug().Err(err).Str("extension", name).Msg("extension not found in PATH")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(),
		EnvServer+"="+*serverURL,
		EnvCurrency+"="+*currency,
		EnvVerbose+"="+strconv.FormatBool(*Verbose),
	)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
