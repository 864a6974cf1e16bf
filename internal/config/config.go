// Package config resolves converter settings from a .env file and the
// environment. Command-line flags are applied on top by the CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/domain"
)

type Config struct {
	Mission      int
	Variant      domain.Variant
	InputDir     string
	OutputDir    string
	MissionsFile string // YAML mission table override
	DBPath       string // SQLite mission catalog
	PDFPath      string
	HTMLPath     string
	XLSXPath     string
	Verbose      bool
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Mission:   domain.DefaultMissionID,
		Variant:   domain.Punch,
		InputDir:  ".",
		OutputDir: ".",
	}
}

// Load reads envFiles (".env" when none are given) if present, then the
// process environment. A missing .env file is not an error.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		return Default(), fmt.Errorf("loading env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, starting from Default.
func FromEnv(getenv func(string) string) (Config, error) {
	c := Default()
	if v := getenv("TLI_MISSION"); v != "" {
		id, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return c, fmt.Errorf("TLI_MISSION: %w", err)
		}
		c.Mission = id
	}
	if v := getenv("TLI_VARIANT"); v != "" {
		variant, ok := domain.ParseVariant(v)
		if !ok {
			return c, fmt.Errorf("TLI_VARIANT: unknown layout %q", v)
		}
		c.Variant = variant
	}
	if v := getenv("TLI_INPUT_DIR"); v != "" {
		c.InputDir = v
	}
	if v := getenv("TLI_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	c.MissionsFile = getenv("TLI_MISSIONS_FILE")
	c.DBPath = getenv("TLI_DB_PATH")
	c.PDFPath = getenv("TLI_PDF")
	c.HTMLPath = getenv("TLI_HTML")
	c.XLSXPath = getenv("TLI_XLSX")
	if v := getenv("TLI_VERBOSE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("TLI_VERBOSE: %w", err)
		}
		c.Verbose = b
	}
	return c, nil
}
