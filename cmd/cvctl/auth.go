package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/artem13815/cvbuilder/pkg/auth"
)

var stdin = bufio.NewReader(os.Stdin)

// prompt returns value, or asks for it on stdin when it is empty.
func prompt(label, value string) string {
	if value != "" {
		return value
	}
	fmt.Print(labelStyle.Render(label + ": "))
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		email, _ := flags.GetString("email")
		password, _ := flags.GetString("password")
		first, _ := flags.GetString("first-name")
		last, _ := flags.GetString("last-name")
		gender, _ := flags.GetString("gender")

		in := auth.Registration{
			Email:     prompt("Email", email),
			Password:  prompt("Password", password),
			FirstName: prompt("First name", first),
			LastName:  prompt("Last name", last),
			Gender:    gender,
		}
		if err := api.Register(cmd.Context(), in); err != nil {
			return err
		}
		fmt.Println(titleStyle.Render("✓ Account created"))
		fmt.Println("Sign in with: cvctl login --email " + in.Email)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		email = prompt("Email", email)
		if err := api.Login(cmd.Context(), email, prompt("Password", password)); err != nil {
			return err
		}
		fmt.Printf("✓ Signed in as %s\n", email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("✓ Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"details"},
	Short:   "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := api.Details(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(titleStyle.Render(strings.TrimSpace(p.FirstName + " " + p.LastName)))
		printField("ID:", p.ID.String())
		printField("Email:", p.Email)
		if p.Gender != "" {
			printField("Gender:", p.Gender)
		}
		if p.JobPosition != "" {
			printField("Position:", p.JobPosition)
		}
		printField("Member since:", p.CreatedAt.Format("2006-01-02"))
		return nil
	},
}

var deleteAccountCmd = &cobra.Command{
	Use:   "delete-account",
	Short: "Delete the signed-in account and its CV",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && prompt("Type DELETE to confirm", "") != "DELETE" {
			return fmt.Errorf("aborted")
		}
		if err := api.DeleteAccount(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("✓ Account deleted")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd, deleteAccountCmd)

	registerCmd.Flags().String("email", "", "Account email")
	registerCmd.Flags().String("password", "", "Password, at least 8 characters")
	registerCmd.Flags().String("first-name", "", "First name")
	registerCmd.Flags().String("last-name", "", "Last name")
	registerCmd.Flags().String("gender", "", "male, female or other")

	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("password", "", "Password")

	deleteAccountCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
