/*
Muchd starts a muchk server and begins listening for new connections.

Usage:

	muchd [flags]
	muchd [flags] -l [[ADDRESS]:PORT]

Once started, the muchd server will listen for HTTP requests and respond to
them using REST protocol. By default, it will listen on localhost:8080. This
can be changed with the --listen/-l flag (or config via environment var). The
flag argument must be either a full address with port, such as
"192.168.0.2:6001", or just the IP address preceeded by a colon, such as
":6001".

If a JWT token secret is not given, one will be automatically generated and
seeded with random bytes. As a consequence, in this mode of operation all
tokens are rendered invalid as soon as the server shuts down. This is
suitable for testing, but must be given via either CLI flags or environment
variable if running in production.

The flags are:

	-v, --version
		Give the current version of the muchd server and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment
		variable MUCHD_LISTEN_ADDRESS, and if that is not given, will default
		to localhost:8080.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing JWT tokens. If there are less
		than 32 bytes in the secret, it will be repeated until it is. The
		maximum size is 64 bytes. If not given, will default to the value of
		environment variable MUCHD_TOKEN_SECRET. If no secret is specified
		or an empty secret is given, a random secret will be automatically
		generated. Note that any tokens issued with a random secret will
		become invalid as soon as the server shuts down.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of the
		following: inmem, sqlite. inmem has no further params. sqlite needs
		the path to the data directory, such as sqlite:path/to/db_dir. If
		not given, will default to the value of environment variable
		MUCHD_DATABASE. If no DB driver is specified or an empty one is
		given, an in-memory database is automatically selected.

	--cache-dir DIR
		Directory to use for the on-disk system cache (see internal/cache).
		If not given, will default to the value of environment variable
		MUCHD_CACHE_DIR, and if that is not given, defaults to
		"./muchd-cache".
*/
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/dekarrin/muchk/internal/cache"
	"github.com/dekarrin/muchk/internal/version"
	"github.com/dekarrin/muchk/server"
	"github.com/dekarrin/muchk/server/dao"
	"github.com/dekarrin/muchk/server/serr"
	"github.com/dekarrin/muchk/server/tunas"
	"github.com/spf13/pflag"
)

const (
	EnvListen    = "MUCHD_LISTEN_ADDRESS"
	EnvSecret    = "MUCHD_TOKEN_SECRET"
	EnvDB        = "MUCHD_DATABASE"
	EnvCacheDir  = "MUCHD_CACHE_DIR"
	defaultCache = "./muchd-cache"
)

var (
	flagVersion  = pflag.BoolP("version", "v", false, "Give the current version of the muchd server and then exit.")
	flagListen   = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret   = pflag.StringP("secret", "s", "", "Use the given secret for token generation.")
	flagDB       = pflag.String("db", "", "Use the given DB connection string.")
	flagCacheDir = pflag.String("cache-dir", "", "Directory to use for the on-disk system cache.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (muchk v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	args := pflag.Args()
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	// get address info
	addr := "localhost"
	port := 8080
	listenAddr := os.Getenv(EnvListen)
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if listenAddr != "" {
		bindParts := strings.SplitN(listenAddr, ":", 2)
		if len(bindParts) != 2 {
			fmt.Fprintf(os.Stderr, "Listen address is not in ADDRESS:PORT or :PORT format.\nDo -h for help.\n")
			os.Exit(1)
		}

		var err error
		if bindParts[0] != "" {
			addr = bindParts[0]
		}
		port, err = strconv.Atoi(bindParts[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%q is not a valid port number.\nDo -h for help.\n", bindParts[1])
			os.Exit(1)
		}
	}

	// assemble a server config
	var cfg server.Config

	dbConnStr := os.Getenv(EnvDB)
	if pflag.Lookup("db").Changed {
		dbConnStr = *flagDB
	}
	if dbConnStr != "" {
		parsedDB, err := server.ParseDBConnString(dbConnStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err.Error())
			os.Exit(1)
		}
		cfg.DB = parsedDB
	}

	tokSecStr := os.Getenv(EnvSecret)
	if pflag.Lookup("secret").Changed {
		tokSecStr = *flagSecret
	}
	if tokSecStr != "" {
		tokSecret := []byte(tokSecStr)

		for len(tokSecret) < server.MinSecretSize {
			doubled := make([]byte, len(tokSecret)*2)
			copy(doubled, tokSecret)
			copy(doubled[len(tokSecret):], tokSecret)
			tokSecret = doubled
		}

		if len(tokSecret) > server.MaxSecretSize {
			fmt.Fprintf(os.Stderr, "Token secret is %d bytes, but it must be <= %d bytes\nDo -h for help.\n", len(tokSecret), server.MaxSecretSize)
			os.Exit(1)
		}

		cfg.TokenSecret = tokSecret
	} else {
		tokSecret := make([]byte, server.MaxSecretSize)
		if _, err := rand.Read(tokSecret); err != nil {
			fmt.Fprintf(os.Stderr, "Could not generate token secret: %s\n", err.Error())
			os.Exit(1)
		}
		cfg.TokenSecret = tokSecret
		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
	}

	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err.Error())
		os.Exit(1)
	}

	cacheDir := os.Getenv(EnvCacheDir)
	if pflag.Lookup("cache-dir").Changed {
		cacheDir = *flagCacheDir
	}
	if cacheDir == "" {
		cacheDir = defaultCache
	}

	// configuration complete, initialize the server
	store, err := cfg.DB.Connect()
	if err != nil {
		log.Fatalf("FATAL could not connect to DB: %s", err.Error())
	}

	sysCache, err := cache.Open(cacheDir)
	if err != nil {
		log.Fatalf("FATAL could not open system cache: %s", err.Error())
	}

	svc := tunas.Service{DB: store, SystemCache: sysCache}
	log.Printf("DEBUG Server initialized")

	// immediately create the admin user so we have someone we can log in as.
	_, err = svc.CreateUser(context.Background(), "admin", "password", "bogus@example.com", dao.Admin)
	if err != nil && !errors.Is(err, serr.ErrAlreadyExists) {
		log.Printf("ERROR could not create initial admin user: %v", err)
		os.Exit(2)
	}
	if !errors.Is(err, serr.ErrAlreadyExists) {
		log.Printf("INFO  Added initial admin user with password 'password'...")
	}

	router := server.NewRouter(store, svc, cfg.TokenSecret, cfg.UnauthDelay())

	listenOn := fmt.Sprintf("%s:%d", addr, port)
	log.Printf("INFO  Starting muchd server %s on %s...", version.ServerCurrent, listenOn)
	if err := http.ListenAndServe(listenOn, router); err != nil {
		log.Fatalf("FATAL server exited: %s", err.Error())
	}
}
