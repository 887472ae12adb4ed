package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/brgysanantonio/portal/internal/auth"
	"github.com/brgysanantonio/portal/internal/storage"
)

var (
	addAdminUser     string
	addAdminPassword string
	addAdminDB       string
)

var addAdminCmd = &cobra.Command{
	Use:   "addadmin",
	Short: "Create an admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAddAdmin(addAdminUser, addAdminPassword, addAdminDB, os.Stdin, cmd.OutOrStdout())
	},
}

func init() {
	addAdminCmd.Flags().StringVar(&addAdminUser, "user", "", "Username (required)")
	addAdminCmd.Flags().StringVar(&addAdminPassword, "password", "", "Password (optional, will prompt if omitted)")
	addAdminCmd.Flags().StringVar(&addAdminDB, "db", "portal.db", "Path to database file")
	addAdminCmd.MarkFlagRequired("user")
}

func runAddAdmin(username, password, dbPath string, stdin io.Reader, stdout io.Writer) error {
	if username == "" {
		return fmt.Errorf("missing required flag: user")
	}

	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if path := os.Getenv("PORTAL_DB"); path != "" && dbPath == "portal.db" {
		dbPath = path
	}

	db, err := storage.NewDB(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if existing, err := db.GetAdminByUsername(username); err == nil && existing != nil {
		return fmt.Errorf("admin %s already exists", username)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin, err := db.CreateAdmin(username, hash)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	fmt.Fprintf(stdout, "Admin %s created successfully with ID %d\n", admin.Username, admin.ID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	// Only prompt without echo when stdin is a terminal.
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Fallback for non-terminal input (tests, pipes).
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
