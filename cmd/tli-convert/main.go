package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/adapters/deck"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/adapters/pdf"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/adapters/scenario"
	sqliteadapter "github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/adapters/sqlite"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/adapters/xlsx"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/config"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/converter"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/domain"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/logging"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/missions"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/ports"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/templates"
)

// app holds the resolved settings and the logger shared by every command.
type app struct {
	cfg     config.Config
	variant string
	logger  *zap.Logger
}

func newRootCmd(cfg config.Config) *cobra.Command {
	a := &app{cfg: cfg, variant: string(cfg.Variant)}

	root := &cobra.Command{
		Use:   "tli-convert",
		Short: "Convert LVDC launch scenario data into RTCC TLI presettings cards",
		Long: `tli-convert reads the LVDC parameters recorded in a mission's launch
scenario and writes the RTCC TLI presettings deck for that launch day.

Settings come from .env, then TLI_* environment variables, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a.logger, err = logging.New(a.cfg.Verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runConvert,
	}

	f := root.Flags()
	f.IntVar(&a.cfg.Mission, "mission", cfg.Mission, "mission ID (TLI_MISSION)")
	f.StringVar(&a.variant, "variant", a.variant, "card layout: legacy or punch (TLI_VARIANT)")
	f.StringVar(&a.cfg.InputDir, "in", cfg.InputDir, "scenario input directory (TLI_INPUT_DIR)")
	f.StringVar(&a.cfg.OutputDir, "out", cfg.OutputDir, "deck output directory (TLI_OUTPUT_DIR)")
	f.StringVar(&a.cfg.PDFPath, "pdf", cfg.PDFPath, "write a PDF listing to this file (TLI_PDF)")
	f.StringVar(&a.cfg.HTMLPath, "html", cfg.HTMLPath, "write an HTML listing to this file (TLI_HTML)")
	f.StringVar(&a.cfg.XLSXPath, "xlsx", cfg.XLSXPath, "write an Excel listing to this file (TLI_XLSX)")

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfg.MissionsFile, "missions", cfg.MissionsFile, "YAML mission table (TLI_MISSIONS_FILE)")
	pf.StringVar(&a.cfg.DBPath, "db", cfg.DBPath, "SQLite mission catalog (TLI_DB_PATH)")
	pf.BoolVarP(&a.cfg.Verbose, "verbose", "v", cfg.Verbose, "debug logging (TLI_VERBOSE)")

	root.AddCommand(a.missionsCmd(), a.lookupCmd(), a.seedCmd())
	return root
}

func (a *app) runConvert(cmd *cobra.Command, args []string) error {
	variant, ok := domain.ParseVariant(a.variant)
	if !ok {
		return fmt.Errorf("unknown variant %q (want legacy or punch)", a.variant)
	}
	gen, err := deck.New(variant)
	if err != nil {
		return err
	}

	catalog, closeFn, err := a.catalog(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	svc := &converter.Service{
		Catalog:   catalog,
		Generator: gen,
		Logger:    a.logger,
		InputDir:  a.cfg.InputDir,
		OutputDir: a.cfg.OutputDir,
		Reports: []converter.ReportTarget{
			{Path: a.cfg.PDFPath, Report: pdf.Listing{}},
			{Path: a.cfg.HTMLPath, Report: templates.HTMLReport{}},
			{Path: a.cfg.XLSXPath, Report: xlsx.Report{}},
		},
	}

	res, err := svc.Run(cmd.Context(), a.cfg.Mission)
	if converter.IsUnknownMission(err) {
		fmt.Fprintf(cmd.ErrOrStderr(), "mission %d is not in the catalog; nothing to do\n", a.cfg.Mission)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d cards written to %s\n", res.Mission.Name, len(res.Deck.Cards), res.OutputPath)
	return nil
}

// catalog picks the mission table: SQLite database, then YAML file, then the
// built-in table.
func (a *app) catalog(ctx context.Context) (ports.MissionCatalog, func(), error) {
	switch {
	case a.cfg.DBPath != "":
		repo, err := sqliteadapter.New(a.cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := repo.Migrate(ctx); err != nil {
			repo.Close()
			return nil, nil, fmt.Errorf("migrate database: %w", err)
		}
		return repo, func() { repo.Close() }, nil
	case a.cfg.MissionsFile != "":
		c, err := missions.LoadYAML(a.cfg.MissionsFile)
		if err != nil {
			return nil, nil, err
		}
		return c, func() {}, nil
	}
	return missions.Builtin(), func() {}, nil
}

func (a *app) missionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "missions",
		Short: "List the mission catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, closeFn, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			ms, err := catalog.Missions(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderMissions(ms))
			return nil
		},
	}
}

func renderMissions(ms []domain.Mission) string {
	head := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))).
		Headers("ID", "Mission", "Day", "Year", "Inputs", "Output").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return head.Padding(0, 1)
			}
			return cell
		})
	for _, m := range ms {
		inputs := ""
		for i, in := range m.Inputs {
			if i > 0 {
				inputs += "\n"
			}
			inputs += in
		}
		t.Row(strconv.Itoa(m.ID), m.Name, fmt.Sprintf("%03d", m.LaunchDay), strconv.Itoa(m.Year), inputs, m.Output)
	}
	return t.Render()
}

func (a *app) lookupCmd() *cobra.Command {
	var def float64
	cmd := &cobra.Command{
		Use:   "lookup FILE KEY",
		Short: "Look up one LVDC key in a scenario file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := scenario.Open(args[0])
			if err != nil {
				return err
			}
			v, found := tbl.Lookup(args[1], def)
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "%s not found, default %s\n", args[1], formatValue(v))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[1], formatValue(v))
			return nil
		},
	}
	cmd.Flags().Float64Var(&def, "default", 0, "value reported when the key is absent")
	return cmd
}

func formatValue(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func (a *app) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the SQLite mission catalog and load the mission table into it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.DBPath == "" {
				return errors.New("seed needs --db or TLI_DB_PATH")
			}
			ms := missions.BuiltinMissions()
			if a.cfg.MissionsFile != "" {
				c, err := missions.LoadYAML(a.cfg.MissionsFile)
				if err != nil {
					return err
				}
				if ms, err = c.Missions(cmd.Context()); err != nil {
					return err
				}
			}
			repo, err := sqliteadapter.New(a.cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer repo.Close()
			if err := repo.Migrate(cmd.Context()); err != nil {
				return err
			}
			if err := repo.Seed(cmd.Context(), ms); err != nil {
				return err
			}
			a.logger.Info("catalog seeded", zap.String("db", a.cfg.DBPath), zap.Int("missions", len(ms)))
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d missions into %s\n", len(ms), a.cfg.DBPath)
			return nil
		},
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	root := newRootCmd(cfg)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
