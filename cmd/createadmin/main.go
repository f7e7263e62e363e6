// Command createadmin creates an administrator account against the
// configured database. The password is prompted without echo so it never
// lands in shell history.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/jdgomezdev/declaratax/internal/flagx"
	"github.com/jdgomezdev/declaratax/internal/server/config"
	"github.com/jdgomezdev/declaratax/internal/server/models"
	"github.com/jdgomezdev/declaratax/internal/server/repositories/repomanager"
	"github.com/jdgomezdev/declaratax/internal/server/services"
	"github.com/jdgomezdev/declaratax/internal/server/validation"
	"github.com/joho/godotenv"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	args := flagx.FilterArgs(os.Args[1:], []string{"-name", "-email", "-doc-type", "-doc-number"})
	fs := flag.NewFlagSet("createadmin", flag.ExitOnError)
	name := fs.String("name", "", "full name of the administrator")
	email := fs.String("email", "", "email address")
	docType := fs.String("doc-type", models.DocTypeCedula, "document type (CC, TI, CE, PA)")
	docNumber := fs.String("doc-number", "", "document number")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("%v", err)
	}

	if *name == "" || *email == "" || *docNumber == "" {
		fs.Usage()
		os.Exit(2)
	}

	password, err := promptPassword()
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		log.Fatalf("repository manager init error: %v", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	users := services.NewUserService(db, rm)

	// A synthetic admin actor so the admin flag is honored.
	user, err := users.Register(ctx, services.RegisterInput{
		NombreCompleto:    *name,
		TipoDocumento:     *docType,
		NumeroDocumento:   *docNumber,
		CorreoElectronico: *email,
		Password:          password,
		EsAdmin:           true,
	}, &models.User{EsAdmin: true})
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			for field, msg := range verr.Fields {
				fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
			}
			os.Exit(1)
		}
		log.Fatalf("error creating administrator: %v", err)
	}

	fmt.Printf("Administrator %q (id %d) created.\n", user.CorreoElectronico, user.ID)
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	first, err := readPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}

	fmt.Print("Repeat password: ")
	second, err := readPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}
