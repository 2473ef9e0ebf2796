package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/artem13815/cvbuilder/pkg/client"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)

var (
	api        *client.Client
	serverFlag string
)

var rootCmd = &cobra.Command{
	Use:   "cvctl",
	Short: "Command-line client for the CV builder API",
	Long: `cvctl edits your CV through the CV builder API: sign in, fill the form
row by row in a server-side draft, submit it and export the result as PDF.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		server := cliConfig.Server
		if serverFlag != "" {
			server = serverFlag
		}
		api = client.New(server, client.NewSession(cliConfig.Token, saveToken))
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), describe(err))
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "API base URL (overrides config)")
}

// describe turns API errors into one readable line.
func describe(err error) string {
	var cerr *client.Error
	if !errors.As(err, &cerr) {
		return err.Error()
	}
	switch cerr.Kind {
	case client.KindAuth:
		return "not signed in or session expired: run 'cvctl login'"
	case client.KindRenderTargetMissing:
		return "the CV view could not be found; nothing was exported"
	}
	msg := cerr.Error()
	for _, fe := range cerr.Fields {
		msg += fmt.Sprintf("\n  %s %s", labelStyle.Render(fe.Field+":"), fe.Message)
	}
	return msg
}

func printField(label, value string) {
	fmt.Printf("%s %s\n", labelStyle.Render(label), valueStyle.Render(value))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readJSONFile(path string, v any) error {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
