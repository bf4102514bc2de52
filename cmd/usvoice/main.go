// usvoice is a command-line front end for the bilingual conversation
// pipeline: process voice turns, save sessions, and browse saved
// conversations.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/US-AEON/Us-Backend/logger"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "usvoice",
	Short:         "Bilingual voice conversation pipeline",
	SilenceUsage:  true,
	SilenceErrors: false,
	Long: `usvoice processes voice conversation turns between Korean and a
foreign language (English, Vietnamese or Khmer): it recognizes the audio in
both languages, picks the spoken one, translates with conversation context,
synthesizes the translation, and records the pair in a session.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file (env vars override it)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
