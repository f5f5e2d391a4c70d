package usecase

import (
	"context"
	"sync"

	"github.com/substyle/substyle/internal/application/port"
	"github.com/substyle/substyle/internal/logging"
)

// TranscribeMediaUseCase drives the analysis service: it initializes the
// models on first use, then transcribes media files into subtitle
// segments.
type TranscribeMediaUseCase struct {
	analyzer port.SubtitleAnalyzer
	opts     port.AnalyzerOptions

	mu          sync.Mutex
	initialized bool
}

// NewTranscribeMediaUseCase creates a new TranscribeMediaUseCase.
func NewTranscribeMediaUseCase(analyzer port.SubtitleAnalyzer, opts port.AnalyzerOptions) *TranscribeMediaUseCase {
	return &TranscribeMediaUseCase{analyzer: analyzer, opts: opts}
}

// TranscribeMediaInput contains the parameters for a transcription run.
type TranscribeMediaInput struct {
	AudioPath string
	Language  string
	Progress  port.ProgressFunc
}

// Execute transcribes one media file, initializing the service if this is
// the first run.
func (uc *TranscribeMediaUseCase) Execute(ctx context.Context, input TranscribeMediaInput) (*port.TranscriptResult, error) {
	log := logging.FromContext(ctx)

	uc.mu.Lock()
	needsInit := !uc.initialized
	uc.mu.Unlock()

	if needsInit {
		log.Info().Str("model", uc.opts.Model).Msg("initializing analysis models")
		if err := uc.analyzer.Initialize(ctx, uc.opts, input.Progress); err != nil {
			return nil, err
		}
		uc.mu.Lock()
		uc.initialized = true
		uc.mu.Unlock()
	}

	language := input.Language
	if language == "" {
		language = uc.opts.Language
	}

	return uc.analyzer.Transcribe(ctx, input.AudioPath, language, input.Progress)
}
