package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save <session-id>",
	Short: "Save a temporary session with a generated title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		defer a.close()

		result, err := a.sessions.Save(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("saved %s: %q\n", result.SessionID, result.Title)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		defer a.close()

		summaries, err := a.sessions.ListSaved(cmd.Context())
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			fmt.Println("no saved sessions")
			return nil
		}
		for _, s := range summaries {
			fmt.Printf("%s  %-20q  %d pairs  saved %s\n",
				s.ID, s.Title, s.PairCount, s.SavedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var detailCmd = &cobra.Command{
	Use:   "detail <session-id>",
	Short: "Show all pairs of a saved session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		defer a.close()

		detail, err := a.sessions.Detail(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s (%d pairs)\n", detail.Title, len(detail.Pairs))
		for i, pair := range detail.Pairs {
			fmt.Printf("[%d] %s (%s)\n", i+1, pair.OriginalText, pair.OriginalLanguage.Code())
			if pair.HasTranslation() {
				fmt.Printf("    %s (%s)\n", pair.TranslatedText, pair.TranslatedLanguage.Code())
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(saveCmd, listCmd, detailCmd)
}
