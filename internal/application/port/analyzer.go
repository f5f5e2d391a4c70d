package port

import "context"

// AnalyzerProgress is a progress notification from the analysis service.
type AnalyzerProgress struct {
	Stage   string  `json:"stage"`
	Percent float64 `json:"percent"`
	Message string  `json:"message"`
}

// ProgressFunc receives progress notifications during long-running
// analyzer operations.
type ProgressFunc func(AnalyzerProgress)

// AnalyzerOptions configures model initialization.
type AnalyzerOptions struct {
	Model       string
	Language    string
	Device      string
	ComputeType string
}

// TranscriptSegment is one aligned segment of the analysis result.
type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscriptResult is the analyzer's output for one media file.
type TranscriptResult struct {
	Language string              `json:"language"`
	Segments []TranscriptSegment `json:"segments"`
}

// AnalyzerStatus describes the analysis service's current state.
type AnalyzerStatus struct {
	State string `json:"state"`
	Model string `json:"model"`
}

// SubtitleAnalyzer is the host-process AI analysis service, an opaque
// asynchronous request/response collaborator.
type SubtitleAnalyzer interface {
	Initialize(ctx context.Context, opts AnalyzerOptions, progress ProgressFunc) error
	Transcribe(ctx context.Context, audioPath, language string, progress ProgressFunc) (*TranscriptResult, error)
	Cancel(ctx context.Context) error
	Status(ctx context.Context) (*AnalyzerStatus, error)
	Shutdown(ctx context.Context) error
}
