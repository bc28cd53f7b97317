package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotConfigured is returned when none of the sources yields a secret.
var ErrNotConfigured = errors.New("not configured")

// Source lists the places a secret may come from, in order of precedence:
// File, then Value, then Env. A configured File is authoritative, so an
// empty file is an error rather than a reason to fall through.
type Source struct {
	// Name is used in error messages.
	Name  string
	File  string
	Value string
	Env   string
}

// Load resolves and trims the secret described by src.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		if secret := strings.TrimSpace(string(data)); secret != "" {
			return secret, nil
		}
		return "", fmt.Errorf("%s file %q is empty: %w", name, file, ErrNotConfigured)
	}

	if secret := strings.TrimSpace(src.Value); secret != "" {
		return secret, nil
	}

	env := strings.TrimSpace(src.Env)
	if env == "" {
		return "", fmt.Errorf("%s is %w", name, ErrNotConfigured)
	}
	if secret := strings.TrimSpace(os.Getenv(env)); secret != "" {
		return secret, nil
	}
	return "", fmt.Errorf("%s is %w (%s is empty)", name, ErrNotConfigured, env)
}
