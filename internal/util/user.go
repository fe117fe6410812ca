package util

import (
	"os/user"
)

// GetCurrentUsername returns the name of the invoking user, used to
// build per-user default paths. Falls back to "pcycle" when the lookup
// fails (e.g. stripped-down containers).
func GetCurrentUsername() string {
	u, err := user.Current()
	if err != nil {
		return "pcycle"
	}
	return u.Username
}
