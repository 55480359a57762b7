// Command adduser creates a password account without going through the API.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nemopss/spendwise/auth"
	"github.com/nemopss/spendwise/config"
	"github.com/nemopss/spendwise/db"
	"github.com/nemopss/spendwise/models"
	"github.com/nemopss/spendwise/validate"
	"golang.org/x/term"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	email := fs.String("email", "", "Email address")
	name := fs.String("name", "", "Display name (defaults to the part of the email before @)")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	driver := fs.String("driver", cfg.DBDriver, "Database driver: postgres or sqlite")
	dsn := fs.String("dsn", cfg.DatabaseURL, "Database connection string or sqlite file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		fmt.Fprintln(stdout, "Usage: adduser -email <email> [-name <name>] [-password <password>] [-driver <driver>] [-dsn <dsn>]")
		fs.PrintDefaults()
		return errors.New("missing required flags: email")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password cannot be empty")
	}

	storage, err := db.New(db.Driver(*driver), *dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer storage.Close()

	ctx := context.Background()
	if err := storage.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	authenticator := auth.NewAuthenticator(storage, validate.New(), auth.WithBcryptCost(cfg.BcryptCost))
	user, err := authenticator.SignUp(ctx, models.CreateUser{Name: *name, Email: *email, Password: password})
	switch {
	case errors.Is(err, auth.ErrDuplicateEmail):
		return fmt.Errorf("user %s already exists", *email)
	case err != nil:
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %s\n", user.Email, user.ID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
