package contacts

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-almanac/internal/config"
	"github.com/zalando/go-keyring"
)

// PasswordFromKeyring returns the password stored for user in the OS
// keyring. A missing entry yields an empty password.
func PasswordFromKeyring(user string) (string, error) {
	if user == "" {
		return "", nil
	}
	pass, err := keyring.Get(config.KeyringService, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrKeyringLookup, err)
	}
	return pass, nil
}
