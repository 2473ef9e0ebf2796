package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/artem13815/cvbuilder/pkg/cv"
	"github.com/artem13815/cvbuilder/pkg/form"
)

var cvCmd = &cobra.Command{
	Use:   "cv",
	Short: "Read or replace your CV document",
}

var cvGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the CV as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := api.GetCV(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(doc)
	},
}

var cvSetCmd = &cobra.Command{
	Use:   "set FILE",
	Short: "Replace the whole CV with a JSON document ('-' reads stdin)",
	Long: `Replace the whole CV. The document is not merged: fields missing from
FILE are stored empty.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var doc cv.CV
		if err := readJSONFile(args[0], &doc); err != nil {
			return err
		}
		saved, err := api.ReplaceCV(cmd.Context(), doc)
		if err != nil {
			return err
		}
		fmt.Printf("✓ CV saved (%d education, %d work entries)\n", len(saved.Education), len(saved.WorkExperience))
		return nil
	},
}

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Work with the flat form representation of the CV",
}

var formGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the CV as flat form JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := api.Form(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(st)
	},
}

var formSubmitCmd = &cobra.Command{
	Use:   "submit FILE",
	Short: "Submit flat form JSON as the new CV ('-' reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var st form.State
		if err := readJSONFile(args[0], &st); err != nil {
			return err
		}
		if _, err := api.SubmitForm(cmd.Context(), st); err != nil {
			return err
		}
		fmt.Println("✓ CV saved")
		return nil
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users and their CVs",
	RunE: func(cmd *cobra.Command, args []string) error {
		skill, _ := cmd.Flags().GetString("skill")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		asJSON, _ := cmd.Flags().GetBool("json")

		items, err := api.ListUsers(cmd.Context(), skill, limit, offset)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(items)
		}
		if len(items) == 0 {
			fmt.Println("No users found.")
			return nil
		}
		for _, p := range items {
			name := strings.TrimSpace(p.FirstName + " " + p.LastName)
			fmt.Printf("%s %s\n", labelStyle.Render(name), valueStyle.Render(p.Email))
			if len(p.Skills) > 0 {
				fmt.Printf("  skills: %s\n", strings.Join(p.Skills, ", "))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cvCmd, formCmd, usersCmd)
	cvCmd.AddCommand(cvGetCmd, cvSetCmd)
	formCmd.AddCommand(formGetCmd, formSubmitCmd)

	usersCmd.Flags().String("skill", "", "Only users listing this skill or an alias of it")
	usersCmd.Flags().Int("limit", 0, "Maximum number of users")
	usersCmd.Flags().Int("offset", 0, "Number of matching users to skip")
	usersCmd.Flags().Bool("json", false, "Print JSON")
}
