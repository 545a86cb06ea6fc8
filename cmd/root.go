package cmd

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"cinebook/config"
	"cinebook/service"
	"cinebook/store"
	"cinebook/tui"
)

func runTUI(svc *service.Bookings, auth *service.Auth) (tea.Model, error) {
	return tea.NewProgram(tui.New(svc, auth), tea.WithAltScreen()).Run()
}

var (
	version = "dev"
	commit  = "none"
)

func buildServices() (*service.Bookings, *service.Auth, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := store.EnsureDefaultCatalog(cfg.GenresFile, cfg.MoviesFile); err != nil {
		return nil, nil, fmt.Errorf("seed catalog: %w", err)
	}
	catalog, err := store.LoadCatalog(cfg.GenresFile, cfg.MoviesFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}
	ledger := store.NewLedger(cfg.BookingsFile, catalog)
	svc, err := service.NewBookings(ledger, catalog, cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, nil, err
	}
	auth := service.NewAuth(store.NewUsers(cfg.UsersFile))
	return svc, auth, nil
}

var rootCmd = &cobra.Command{
	Use:   "cinebook",
	Short: "Book movie tickets from the terminal",
	Long:  `An interactive ticket booking app: browse the catalog, pick seats and manage bookings, all from the terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, auth, err := buildServices()
		if err != nil {
			return err
		}
		_, err = runTUI(svc, auth)
		return err
	},
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Cinebook",
	Run: func(cmd *cobra.Command, args []string) {
		if commit != "none" && commit != "" {
			fmt.Printf("cinebook %s (%s)\n", version, commit)
			return
		}
		fmt.Printf("cinebook %s\n", version)
	},
}

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "List every booking in the ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := buildServices()
		if err != nil {
			return err
		}
		bookings, err := svc.All()
		if err != nil {
			return err
		}
		if len(bookings) == 0 {
			fmt.Println("No bookings yet.")
			return nil
		}
		for _, b := range bookings {
			code := b.Code
			if code == "" {
				code = "------"
			}
			fmt.Printf("#%-4d %s  %-25s %2d tickets  $%8.2f  %-9s  %s\n",
				b.Id, code, b.MovieTitle, b.Tickets, b.TotalPrice, b.Status, strings.Join(b.Seats, ";"))
		}
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Replay the ledger and report decode problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := buildServices()
		if err != nil {
			return err
		}
		report := svc.LoadReport()
		fmt.Printf("lines read:      %d\n", report.Lines)
		fmt.Printf("records decoded: %d\n", report.Decoded)
		fmt.Printf("lines skipped:   %d\n", report.Skipped)
		fmt.Printf("seat conflicts:  %d\n", svc.SeatConflicts())
		for _, warning := range report.Warnings {
			fmt.Printf("warning: %s\n", warning)
		}
		for _, warning := range svc.Catalog().Warnings() {
			fmt.Printf("catalog: %s\n", warning)
		}
		if report.Skipped > 0 || svc.SeatConflicts() > 0 {
			return fmt.Errorf("ledger has %d skipped lines and %d seat conflicts", report.Skipped, svc.SeatConflicts())
		}
		fmt.Println("ledger is clean")
		return nil
	},
}

func Execute() {
	rootCmd.AddCommand(versionCmd, bookingsCmd, checkCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
