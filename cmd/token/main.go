// token prints a signed operator JWT for the protected mutation routes.
//
// Usage: go run ./cmd/token -subject ops -role operator [-minutes 60]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/config"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/jwt"
)

func main() {
	subject := flag.String("subject", "ops", "token subject")
	role := flag.String("role", "operator", "operator role")
	minutes := flag.Int("minutes", 0, "lifetime in minutes (default JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if !cfg.JWT.Enabled() {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is empty: mutating routes are open and no token is needed")
		os.Exit(1)
	}
	exp := cfg.JWT.Expiration
	if *minutes > 0 {
		exp = *minutes
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *subject, *role, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
