// Command devtoken prints an access token for local testing of the
// catalog and admin routes.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"

	"github.com/iliyamo/game-storefront/internal/model"
	"github.com/iliyamo/game-storefront/internal/utils"
)

func main() {
	_ = godotenv.Load()

	secret := flag.String("secret", os.Getenv("JWT_SECRET"), "HMAC secret (defaults to JWT_SECRET)")
	user := flag.Int64("user", 1, "user id placed in the sub claim")
	role := flag.String("role", model.RoleAdmin, "role claim")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if *secret == "" {
		log.Fatal("no secret: set JWT_SECRET or pass -secret")
	}
	tok, err := utils.NewAccessToken(*secret, *user, *role, *ttl)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(tok.Token)
}
