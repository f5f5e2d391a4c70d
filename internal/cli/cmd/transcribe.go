package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/substyle/substyle/internal/application/port"
	"github.com/substyle/substyle/internal/application/usecase"
	"github.com/substyle/substyle/internal/infrastructure/bridge"
)

var transcribeLanguage string

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Transcribe a media file through the analysis service",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := app.Context()
		cfg := app.Config.Analyzer

		client, err := bridge.Spawn(ctx, cfg.Command, cfg.Args...)
		if err != nil {
			return err
		}
		defer func() {
			_ = client.Shutdown(ctx)
			_ = client.Close()
		}()

		uc := usecase.NewTranscribeMediaUseCase(client, port.AnalyzerOptions{
			Model:       cfg.Model,
			Language:    cfg.Language,
			Device:      cfg.Device,
			ComputeType: cfg.ComputeType,
		})

		result, err := uc.Execute(ctx, usecase.TranscribeMediaInput{
			AudioPath: args[0],
			Language:  transcribeLanguage,
			Progress: func(p port.AnalyzerProgress) {
				fmt.Printf("\r%-12s %5.1f%% %s", p.Stage, p.Percent, p.Message)
			},
		})
		fmt.Println()
		if err != nil {
			return err
		}

		for _, seg := range result.Segments {
			fmt.Printf("[%8.2f -> %8.2f] %s\n", seg.Start, seg.End, seg.Text)
		}
		return nil
	},
}

func init() {
	transcribeCmd.Flags().StringVarP(&transcribeLanguage, "language", "l", "", "override the configured language")
	rootCmd.AddCommand(transcribeCmd)
}
