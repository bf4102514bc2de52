package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/US-AEON/Us-Backend/language"
)

var (
	turnAudioPath string
	turnForeign   string
	turnSessionID string
	turnOutPath   string
)

var turnCmd = &cobra.Command{
	Use:   "turn",
	Short: "Process one conversation turn from an audio file",
	Long: `Turn runs the full pipeline on a recorded utterance: dual speech
recognition, language selection, context-aware translation, and speech
synthesis. The resulting pair is appended to the session (a new temporary
session is created when --session is omitted) and the synthesized audio is
written to --out.`,
	RunE: runTurn,
}

func init() {
	turnCmd.Flags().StringVar(&turnAudioPath, "audio", "", "path to the input audio file (WAV or MP3)")
	turnCmd.Flags().StringVar(&turnForeign, "foreign", "", "foreign language code (en-US, vi-VN, km-KH)")
	turnCmd.Flags().StringVar(&turnSessionID, "session", "", "existing session id to continue")
	turnCmd.Flags().StringVar(&turnOutPath, "out", "reply.mp3", "path to write the synthesized audio")
	_ = turnCmd.MarkFlagRequired("audio")
	_ = turnCmd.MarkFlagRequired("foreign")
	rootCmd.AddCommand(turnCmd)
}

func runTurn(cmd *cobra.Command, args []string) error {
	foreign, err := language.FromCode(turnForeign)
	if err != nil {
		return err
	}

	audio, err := os.ReadFile(turnAudioPath)
	if err != nil {
		return fmt.Errorf("failed to read audio file: %w", err)
	}

	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	result, err := a.orchestrator.ProcessTurn(cmd.Context(), audio, foreign, turnSessionID)
	if err != nil {
		return err
	}

	if err := os.WriteFile(turnOutPath, result.Audio, 0o644); err != nil {
		return fmt.Errorf("failed to write audio: %w", err)
	}

	fmt.Printf("session:    %s\n", result.SessionID)
	fmt.Printf("detected:   %s (%.2f)\n", result.Pair.OriginalLanguage.Code(), result.Pair.Confidence)
	fmt.Printf("original:   %s\n", result.Pair.OriginalText)
	if result.Pair.HasTranslation() {
		fmt.Printf("translated: %s (%s)\n", result.Pair.TranslatedText, result.Pair.TranslatedLanguage.Code())
	}
	fmt.Printf("audio:      %s (%d bytes)\n", turnOutPath, len(result.Audio))
	return nil
}
