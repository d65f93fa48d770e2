// Command tokengen mints bearer tokens accepted by GET /user.
//
//	tokengen -sub 1 -ttl 1h
//	tokengen -sub 1 -n 1000 -out tests/load/tokens.csv
//
// The secret and issuer default to JWT_SECRET and JWT_ISSUER (a .env file is
// honoured, as for the server).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/infrastructure/security"
)

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "tokengen:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("tokengen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	sub := fs.Int64("sub", 0, "user id to put in the token subject (required)")
	ttl := fs.Duration("ttl", time.Hour, "token lifetime")
	n := fs.Int("n", 1, "number of tokens; ids run from -sub upwards")
	secret := fs.String("secret", os.Getenv("JWT_SECRET"), "HS256 secret [default: $JWT_SECRET]")
	issuer := fs.String("issuer", envOr("JWT_ISSUER", "user-service"), "token issuer [default: $JWT_ISSUER]")
	out := fs.String("out", "", "write tokens to this file instead of stdout")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sub <= 0 {
		return errors.New("-sub must be a positive user id")
	}
	if *secret == "" {
		return errors.New("no secret: set -secret or JWT_SECRET")
	}
	if *n < 1 {
		return errors.New("-n must be at least 1")
	}

	signer := security.NewJWTSigner(*secret, *issuer)
	if *out == "" {
		return writeTokens(stdout, signer, *sub, *n, *ttl)
	}

	f, err := createFile(*out)
	if err != nil {
		return err
	}
	if err := writeTokens(f, signer, *sub, *n, *ttl); err != nil {
		_ = f.Close()
		return err
	}
	// a failed close can mean the tokens never reached disk
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", *out, err)
	}
	return nil
}

var createFile = func(path string) (io.WriteCloser, error) { return os.Create(path) }

func writeTokens(w io.Writer, signer *security.JWTSigner, first int64, n int, ttl time.Duration) error {
	for i := 0; i < n; i++ {
		tok, err := signer.SignAccessToken(first+int64(i), ttl)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, tok); err != nil {
			return err
		}
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
