package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/leilabk/shelfctl/internal/models"
	"github.com/leilabk/shelfctl/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// promptCredentials reads a username (unless already provided) and a password.
// The password is read without echo when stdin is a terminal.
func (r *Runner) promptCredentials(username string) (string, string, error) {
	reader := bufio.NewReader(os.Stdin)

	if username == "" {
		r.writePlain("Username: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("failed to read username: %w", err)
		}
		username = strings.TrimSpace(line)
	}

	r.writePlain("Password: ")
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		r.writePlain("\n")
		if err != nil {
			return "", "", fmt.Errorf("failed to read password: %w", err)
		}
		return username, string(raw), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil {
		return "", "", fmt.Errorf("failed to read password: %w", err)
	}
	return username, strings.TrimSpace(line), nil
}

// AuthLogin signs in and stores the session token. When a session is already
// active this is a no-op, mirroring the server's one-session-per-client model.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if user, ok := r.sess.CurrentUser(); ok {
		return r.writePlain("Already signed in as %s\n", user.Name)
	}

	username, password, err := r.promptCredentials(cmd.String("username"))
	if err != nil {
		return err
	}
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", shared.ErrMissingArgument)
	}

	r.logger.Info("signing in", "username", username)

	if _, err := r.auth.Login(ctx, models.UserLogin{Username: username, Password: password}); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	user, _ := r.sess.CurrentUser()
	return r.writePlain("✓ Signed in as %s\n", user.Name)
}

// AuthRegister creates an account and stores the returned session token.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	username, password, err := r.promptCredentials(cmd.String("username"))
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", shared.ErrMissingArgument)
	}

	reg := models.UserRegister{
		Name:     cmd.String("name"),
		Username: username,
		Password: password,
	}

	r.logger.Info("registering account", "username", username)

	if err := r.auth.Register(ctx, reg); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	user, _ := r.sess.CurrentUser()
	return r.writePlain("✓ Account created, signed in as %s\n", user.Name)
}

// AuthLogout discards the stored session token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.sess.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return r.writePlain("✓ Signed out\n")
}

// AuthWhoami shows the user decoded from the stored token.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	user, ok := r.sess.CurrentUser()
	if !ok {
		return fmt.Errorf("%w: no session token stored", shared.ErrNotAuthenticated)
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, true)
	}

	r.writePlain("Name:     %s\n", user.Name)
	r.writePlain("Username: %s\n", user.Username)
	if user.IsAdmin {
		r.writePlain("Role:     admin\n")
	}
	return nil
}
