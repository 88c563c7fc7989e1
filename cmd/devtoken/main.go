// Command devtoken prints an ID token accepted by the jwt auth provider, for
// logging in against a local server without an external identity provider.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"local_mart/config"
	"local_mart/identity"
)

func main() {
	fs := pflag.NewFlagSet("devtoken", pflag.ExitOnError)
	config.Flags(fs)
	email := fs.String("email", "", "email of the user to log in as")
	name := fs.String("name", "", "display name")
	subject := fs.String("subject", "", "external user id, derived from the email when empty")
	ttl := fs.Duration("ttl", time.Hour, "token lifetime")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(fs)
	if err != nil {
		logrus.Fatalf("Failed to load config with error: %+v", err)
	}
	if cfg.Auth.Provider != config.AuthProviderJWT {
		logrus.Fatalf("devtoken only works with the jwt auth provider, configured: %s", cfg.Auth.Provider)
	}
	if *email == "" {
		logrus.Fatal("--email is required")
	}

	id := identity.Identity{ExternalID: *subject, Email: *email}
	if id.ExternalID == "" {
		id.ExternalID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+*email)).String()
	}
	if *name != "" {
		id.Name = name
	}

	token, err := identity.NewJWTProvider(cfg.Auth.JWTSecret).IssueIDToken(id, *ttl)
	if err != nil {
		logrus.Fatalf("Failed to issue token with error: %+v", err)
	}
	fmt.Println(token)
}
