// One-off: go run scripts/genhash.go [password] [scheme]
// Prints the stored form of a password, for seeding users rows by hand.
package main

import (
	"fmt"
	"os"

	"todoapp/internal/auth"
	"todoapp/internal/config"
)

func main() {
	password := "admin"
	if len(os.Args) > 1 {
		password = os.Args[1]
	}
	scheme := config.PasswordSchemeBcrypt
	if len(os.Args) > 2 {
		scheme = os.Args[2]
	}
	s, err := auth.NewPasswordScheme(scheme)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	h, err := s.Hash(password)
	if err != nil {
		panic(err)
	}
	fmt.Print(h)
}
