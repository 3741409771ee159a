package cli

import (
	"context"
	"fmt"
	"os"

	"rconsh/internal/log"
	"rconsh/internal/rcon"
	"rconsh/internal/secret"
)

// passwordEnv supplies the password when neither a flag nor a profile does.
const passwordEnv = "RCONSH_PASSWORD"

// Remote is a connected RCON server.
type Remote interface {
	Command(ctx context.Context, cmd string) (string, error)
	Close() error
}

// target is a resolved server address and password.
type target struct {
	address  string
	password string
}

// resolveTarget combines flags, the selected profile and the config
// default. Flags take precedence over the profile.
func (a *App) resolveTarget(opts *rootOptions) (target, error) {
	t := target{address: opts.address, password: opts.password}

	if opts.profile != "" {
		p, err := a.store.ProfileGet(opts.profile)
		if err != nil {
			return t, err
		}
		if t.address == "" {
			t.address = p.Address
		}
		if t.password == "" && p.HasPassword() {
			key, err := a.key()
			if err != nil {
				return t, err
			}
			pw, err := secret.Open(key, p.Name, p.Password)
			if err != nil {
				return t, fmt.Errorf("failed to unlock password of profile %s: %w", p.Name, err)
			}
			t.password = string(pw)
		}
	}

	if t.address == "" {
		t.address = a.cfg.DefaultAddress
	}
	if t.password == "" {
		t.password = os.Getenv(passwordEnv)
	}
	return t, nil
}

// connect dials and authenticates, prompting for a password if needed.
func (a *App) connect(ctx context.Context, opts *rootOptions) (Remote, string, error) {
	t, err := a.resolveTarget(opts)
	if err != nil {
		return nil, "", err
	}

	if t.password == "" {
		t.password, err = a.ui.ReadPassword("Enter RCON password: ")
		if err != nil {
			return nil, "", err
		}
	}

	client, err := rcon.Dial(ctx, t.address, a.cfg.RequestTimeout())
	if err != nil {
		a.logger.Error(ctx, "Failed to connect", log.Fields{"address": t.address, "error": err})
		return nil, "", err
	}
	if err := client.Authenticate(ctx, t.password); err != nil {
		client.Close()
		a.logger.Error(ctx, "Failed to authenticate", log.Fields{"address": t.address, "error": err})
		return nil, "", fmt.Errorf("failed to authenticate with %s: %w", t.address, err)
	}

	a.logger.Info(ctx, "Connected", log.Fields{"address": t.address})
	return client, t.address, nil
}
