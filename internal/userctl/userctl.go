// Package userctl implements the account bootstrap tool. It registers a user
// straight through the service layer, which is handy for seeding the first
// accounts of a fresh deployment without the HTTP endpoint.
package userctl

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/dstepanenko/storefront/internal/common"
	"github.com/dstepanenko/storefront/internal/flagx"
	"github.com/dstepanenko/storefront/internal/server/config"
	"github.com/dstepanenko/storefront/internal/server/models"
	"github.com/dstepanenko/storefront/internal/server/repositories/repomanager"
	"github.com/dstepanenko/storefront/internal/server/services"
	"github.com/dstepanenko/storefront/internal/validation"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// registrar is the slice of the user service the tool needs.
type registrar interface {
	Register(ctx context.Context, email, password string, profile models.Profile) (*models.User, error)
}

// Options are the account fields collected from flags.
type Options struct {
	Email     string
	Firstname string
	Lastname  string
	Gender    string
	Birthday  string
}

// ParseOptions reads the account fields from args. Args are filtered to the
// flags handled here, so the config flags can share the command line.
func ParseOptions(args []string) (*Options, error) {
	args = flagx.FilterArgs(args, []string{"-email", "-firstname", "-lastname", "-gender", "-birthday"})

	fs := flag.NewFlagSet("userctl", flag.ContinueOnError)

	opts := &Options{}
	fs.StringVar(&opts.Email, "email", "", "account e-mail")
	fs.StringVar(&opts.Firstname, "firstname", "", "first name")
	fs.StringVar(&opts.Lastname, "lastname", "", "last name")
	fs.StringVar(&opts.Gender, "gender", "", "gender")
	fs.StringVar(&opts.Birthday, "birthday", "", "birthday (YYYY-MM-DD)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

// GetPassword prints a password prompt to w and reads a password
// from the user's terminal without echo. A newline is printed after
// the read to keep the UI tidy.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// register validates the options and creates the account.
func register(ctx context.Context, svc registrar, opts *Options, password string, w io.Writer) error {
	if !validation.ValidEmail(opts.Email) {
		return fmt.Errorf("invalid e-mail: %q", opts.Email)
	}
	if !validation.ValidBirthday(opts.Birthday) {
		return fmt.Errorf("invalid birthday: %q, expected YYYY-MM-DD", opts.Birthday)
	}
	birthday, err := validation.ParseBirthday(opts.Birthday)
	if err != nil {
		return err
	}

	profile := models.Profile{
		Firstname: opts.Firstname,
		Lastname:  opts.Lastname,
		Gender:    opts.Gender,
		Birthday:  birthday,
	}
	if _, err := svc.Register(ctx, opts.Email, password, profile); err != nil {
		if errors.Is(err, common.ErrorDuplicateEmail) {
			return fmt.Errorf("account %q already exists", opts.Email)
		}
		return err
	}

	fmt.Fprintf(w, "Registered %s\n", opts.Email)
	return nil
}

// Run wires the database and executes the registration.
func Run(ctx context.Context, cfg *config.Config, args []string, w io.Writer) error {
	opts, err := ParseOptions(args)
	if err != nil {
		return err
	}

	password, err := GetPassword(w)
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	svc := services.NewUserService(db, rm, cfg)
	return register(ctx, svc, opts, string(password), w)
}
