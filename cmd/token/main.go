// Command token mints a bearer token for a user id, signed with JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/saulo-duarte/coach-lambda/internal/auth"
	"github.com/saulo-duarte/coach-lambda/internal/config"
)

func main() {
	config.Init()
	if err := run(os.Args[1:], os.Stdout); err != nil {
		config.Logger.WithError(err).Fatal("Failed to generate token")
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	userID := fs.String("user", config.DefaultUserID, "user id to embed in the token")
	role := fs.String("role", "owner", "role claim")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := uuid.Parse(*userID); err != nil {
		return fmt.Errorf("invalid user id %q: %w", *userID, err)
	}

	auth.Init()
	token, err := auth.GenerateJWT(*userID, *role, *ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
