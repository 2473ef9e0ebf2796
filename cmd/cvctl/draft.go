package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/artem13815/cvbuilder/pkg/form"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Edit the CV form in a server-side draft",
	Long: `A draft is a copy of the form kept on the server while you edit it.
Open one, change rows, fields and list items, then submit it as your CV.`,
}

// showDraft prints the sections of st as numbered rows.
func showDraft(st form.State) error {
	education, err := st.EducationRows()
	if err != nil {
		return err
	}
	work, err := st.WorkRows()
	if err != nil {
		return err
	}
	fmt.Println(titleStyle.Render(strings.TrimSpace(st.FirstName + " " + st.LastName + " (draft)")))
	fmt.Println(labelStyle.Render("Education"))
	for i, r := range education {
		fmt.Printf("  [%d] %s → %s  %s  %s\n", i, orDash(r.From), orDash(r.To), orDash(r.Place), orDash(r.Field))
	}
	fmt.Println(labelStyle.Render("Work"))
	for i, r := range work {
		fmt.Printf("  [%d] %s → %s  %s  %s\n", i, orDash(r.From), orDash(r.To), orDash(r.Place), orDash(r.Position))
	}
	printField("Skills:", strings.Join(st.Skills, ", "))
	printField("Languages:", strings.Join(st.Languages, ", "))
	return nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func index(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", arg)
	}
	return i, nil
}

// draftResult prints the draft returned by an edit command.
func draftResult(st form.State, err error) error {
	if err != nil {
		return err
	}
	return showDraft(st)
}

var draftOpenCmd = &cobra.Command{
	Use:   "open",
	Short: "Open a draft from the saved CV",
	RunE: func(cmd *cobra.Command, args []string) error {
		return draftResult(api.OpenDraft(cmd.Context()))
	},
}

var draftShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		st, err := api.Draft(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(st)
		}
		return showDraft(st)
	},
}

var draftDiscardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Throw the draft away",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api.DiscardDraft(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("✓ Draft discarded")
		return nil
	},
}

var draftSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Save the draft as your CV",
	RunE: func(cmd *cobra.Command, args []string) error {
		saved, err := api.SubmitDraft(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("✓ CV saved (%d education, %d work entries)\n", len(saved.Education), len(saved.WorkExperience))
		return nil
	},
}

var addEntryCmd = &cobra.Command{
	Use:       "add-entry SECTION",
	Short:     "Append a blank row to education or work",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(form.SectionEducation), string(form.SectionWork)},
	RunE: func(cmd *cobra.Command, args []string) error {
		return draftResult(api.AppendEntry(cmd.Context(), form.Section(args[0])))
	},
}

var removeEntryCmd = &cobra.Command{
	Use:   "remove-entry SECTION [INDEX]",
	Short: "Remove a row; without INDEX the last row goes",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sec := form.Section(args[0])
		if len(args) == 1 {
			return draftResult(api.RemoveLastEntry(cmd.Context(), sec))
		}
		i, err := index(args[1])
		if err != nil {
			return err
		}
		return draftResult(api.RemoveEntry(cmd.Context(), sec, i))
	},
}

var setCellCmd = &cobra.Command{
	Use:     "set-cell SECTION INDEX COLUMN VALUE",
	Short:   "Set one cell of a row",
	Example: `  cvctl draft set-cell work 1 workPlace "Acme Corp"`,
	Args:    cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := index(args[1])
		if err != nil {
			return err
		}
		return draftResult(api.UpdateField(cmd.Context(), form.Section(args[0]), args[2], i, args[3]))
	},
}

var setFieldsCmd = &cobra.Command{
	Use:     "set NAME=VALUE...",
	Short:   "Set scalar fields such as city or jobPosition",
	Example: `  cvctl draft set city=Krakow postalCode=30-001`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		values := make(map[string]string, len(args))
		for _, a := range args {
			name, value, ok := strings.Cut(a, "=")
			if !ok {
				return fmt.Errorf("expected NAME=VALUE, got %q", a)
			}
			values[name] = value
		}
		return draftResult(api.SetFields(cmd.Context(), values))
	},
}

var addItemCmd = &cobra.Command{
	Use:   "add-item LIST [VALUE]",
	Short: "Append an item to skills or languages",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := ""
		if len(args) == 2 {
			value = args[1]
		}
		return draftResult(api.AppendItem(cmd.Context(), form.List(args[0]), value))
	},
}

var removeItemCmd = &cobra.Command{
	Use:   "remove-item LIST INDEX",
	Short: "Remove one item from skills or languages",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := index(args[1])
		if err != nil {
			return err
		}
		return draftResult(api.RemoveItem(cmd.Context(), form.List(args[0]), i))
	},
}

var setItemCmd = &cobra.Command{
	Use:   "set-item LIST INDEX VALUE",
	Short: "Replace one item of skills or languages",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := index(args[1])
		if err != nil {
			return err
		}
		return draftResult(api.UpdateItem(cmd.Context(), form.List(args[0]), i, args[2]))
	},
}

func init() {
	rootCmd.AddCommand(draftCmd)
	draftCmd.AddCommand(
		draftOpenCmd, draftShowCmd, draftDiscardCmd, draftSubmitCmd,
		addEntryCmd, removeEntryCmd, setCellCmd, setFieldsCmd,
		addItemCmd, removeItemCmd, setItemCmd,
	)
	draftShowCmd.Flags().Bool("json", false, "Print the raw form JSON")
}
