package pcycle

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog/log"
)

// runDelegateScript hands an Eaton PDU off to the external power-cycle
// executable. The script gets the PDU host and the comma-joined outlet
// list as named arguments and owns all of its internal timing; the only
// thing inspected here is its exit status.
func runDelegateScript(script, host, outlets string) error {
	cmd := exec.Command(script, "--pdu", host, "--outlets", outlets)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	log.Debug().Msgf("running delegate: %s --pdu %s --outlets %s", script, host, outlets)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("delegate script %s failed for PDU %s: %w", script, host, err)
	}
	return nil
}
