// Command createuser adds an account from the console, for bootstrapping
// the first admin.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"DocRegistry/config"
	"DocRegistry/models"
	"DocRegistry/services"

	"golang.org/x/term"
)

func main() {
	name := flag.String("name", "", "display name")
	email := flag.String("email", "", "login email")
	role := flag.String("role", string(models.RoleAdmin), "role: admin or user")
	password := flag.String("password", "", "password (prompted when empty)")
	flag.Parse()

	config.LoadEnv()
	if err := config.ValidateDatabaseConfig(); err != nil {
		log.Fatalf("database configuration: %v", err)
	}
	app, err := config.LoadAppConfig()
	if err != nil {
		log.Fatalf("app configuration: %v", err)
	}

	secret := *password
	if secret == "" {
		secret, err = promptPassword()
		if err != nil {
			log.Fatalf("read password: %v", err)
		}
	}

	db, err := config.ConnectDB(config.LoadDatabaseConfig())
	if err != nil {
		log.Fatalf("connect: %v", err)
	}

	users := services.NewUserService(db, services.NewPasswordPolicy(app.PasswordScheme))
	user, err := users.Create(context.Background(), models.User{
		Name:     *name,
		Email:    *email,
		Password: secret,
		Role:     models.Role(*role),
	})
	if err != nil {
		log.Fatalf("create user: %v", err)
	}

	fmt.Printf("User %s <%s> created with id %d and role %s\n", user.Name, user.Email, user.ID, user.Role)
}

func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal; pass -password")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}

	fmt.Fprint(os.Stderr, "Repeat password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(first), nil
}
