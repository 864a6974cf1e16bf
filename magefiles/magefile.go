//go:build mage

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/joho/godotenv"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary  = "bin/tli-convert"
	mainPkg = "./cmd/tli-convert"
)

// Build tidies deps then compiles to ./bin/tli-convert.
func Build() error {
	mg.Deps(Tidy)
	fmt.Println(">> Building tli-convert...")
	return sh.Run("go", "build", "-o", binary, mainPkg)
}

// Convert builds then runs a conversion. Settings come from .env and the
// TLI_* environment; MISSION overrides the mission ID for this run.
func Convert() error {
	mg.Deps(Build)
	args := []string{}
	if m := os.Getenv("MISSION"); m != "" {
		args = append(args, "--mission", m)
	}
	fmt.Println(">> tli-convert", args)
	return sh.RunV("./"+binary, args...)
}

// Missions builds then prints the mission catalog.
func Missions() error {
	mg.Deps(Build)
	return sh.RunV("./"+binary, "missions")
}

// Seed builds then loads the mission table into the SQLite catalog at
// TLI_DB_PATH (default tli.db).
func Seed() error {
	mg.Deps(Build)
	db := os.Getenv("TLI_DB_PATH")
	if db == "" {
		db = "tli.db"
	}
	fmt.Println(">> seeding", db)
	return sh.RunV("./"+binary, "seed", "--db", db)
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println(">> go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Test runs all unit tests.
func Test() error {
	fmt.Println(">> Running tests...")
	return sh.RunV("go", "test", "./...")
}

// Lint runs golangci-lint if available.
func Lint() error {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println(">> golangci-lint not found; skipping.")
		return nil
	}
	return sh.Run("golangci-lint", "run", "./...")
}

// Clean removes build artifacts and the local SQLite catalog.
func Clean() error {
	fmt.Println(">> Cleaning...")
	os.Remove("tli.db")
	return os.RemoveAll("bin")
}

// Install builds and installs the binary to $GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	return sh.Run("go", "install", mainPkg)
}

func init() {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("error loading .env file", "err", err)
	}
}
