package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mandalnilabja/mpgconverter/internal/storage"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/handler/shared"
)

// errNoAdminPassword means the admin API stays locked until a password is set.
var errNoAdminPassword = errors.New("no admin password configured")

// ensureAdminPassword stores an admin password hash if none exists yet.
// seed (ADMIN_PASSWORD) wins; otherwise the operator is prompted when in is a terminal.
func ensureAdminPassword(store storage.Storage, seed string, in io.Reader, out io.Writer, interactive bool, params *storage.Argon2Params) error {
	hasPassword, err := store.HasAdminPassword()
	if err != nil {
		return fmt.Errorf("failed to check admin password: %w", err)
	}

	if hasPassword {
		return nil
	}

	if seed != "" {
		if !shared.IsValidAdminPassword(seed) {
			return fmt.Errorf("ADMIN_PASSWORD must be alphanumeric with at least 8 characters")
		}
		return saveAdminPassword(store, seed, params)
	}

	if !interactive {
		return errNoAdminPassword
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "╔════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(out, "║              FIRST-TIME SETUP REQUIRED                     ║")
	fmt.Fprintln(out, "╚════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "No admin password configured. Please set one now.")
	fmt.Fprintln(out, "This password protects the usage and log Admin API.")
	fmt.Fprintln(out)

	reader := bufio.NewReader(in)

	for {
		fmt.Fprint(out, "Enter admin password (alphanumeric, min 8 chars): ")
		password, err := readLine(reader)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		if !shared.IsValidAdminPassword(password) {
			fmt.Fprintln(out, "❌ Password must be alphanumeric with at least 8 characters.")
			fmt.Fprintln(out)
			continue
		}

		fmt.Fprint(out, "Confirm password: ")
		confirm, err := readLine(reader)
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}

		if password != confirm {
			fmt.Fprintln(out, "❌ Passwords do not match. Please try again.")
			fmt.Fprintln(out)
			continue
		}

		if err := saveAdminPassword(store, password, params); err != nil {
			return err
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "✓ Admin password saved successfully!")
		fmt.Fprintln(out)
		return nil
	}
}

// readLine returns the next trimmed line; a final line without newline still counts.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func saveAdminPassword(store storage.Storage, password string, params *storage.Argon2Params) error {
	hash, err := storage.HashPassword(password, params)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := store.SetAdminPasswordHash(hash); err != nil {
		return fmt.Errorf("failed to save password: %w", err)
	}
	return nil
}
