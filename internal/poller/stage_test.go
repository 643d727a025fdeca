package poller

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/dealdesk-cli/pkg/dealdesk"
)

func TestDeriveStage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   *dealdesk.StatusResponse
		label    string
		terminal bool
		changed  bool
		outcome  Outcome
	}{
		{
			name:    "ocr processing",
			status:  &dealdesk.StatusResponse{OCRStatus: "processing"},
			label:   "Stage 1/2: extracting text",
			changed: true,
		},
		{
			name:    "ocr processing wins over extraction status",
			status:  &dealdesk.StatusResponse{OCRStatus: "processing", ExtractionStatus: "completed"},
			label:   "Stage 1/2: extracting text",
			changed: true,
		},
		{
			name:     "ocr failed with message",
			status:   &dealdesk.StatusResponse{OCRStatus: "failed", ErrorMessage: "corrupt PDF"},
			label:    "OCR failed: corrupt PDF",
			terminal: true,
			changed:  true,
			outcome:  OutcomeOCRFailed,
		},
		{
			name:     "ocr failed without message falls back to Unknown",
			status:   &dealdesk.StatusResponse{OCRStatus: "failed"},
			label:    "OCR failed: Unknown",
			terminal: true,
			changed:  true,
			outcome:  OutcomeOCRFailed,
		},
		{
			name:    "extraction processing",
			status:  &dealdesk.StatusResponse{OCRStatus: "completed", ExtractionStatus: "processing"},
			label:   "Stage 2/2: analyzing financials",
			changed: true,
		},
		{
			name:     "extraction completed uses company name",
			status:   &dealdesk.StatusResponse{OCRStatus: "completed", ExtractionStatus: "completed", CompanyName: "Acme Corp", Filename: "cim.pdf"},
			label:    "Analysis complete: Acme Corp",
			terminal: true,
			changed:  true,
			outcome:  OutcomeComplete,
		},
		{
			name:     "extraction completed falls back to filename",
			status:   &dealdesk.StatusResponse{OCRStatus: "completed", ExtractionStatus: "completed", Filename: "cim.pdf"},
			label:    "Analysis complete: cim.pdf",
			terminal: true,
			changed:  true,
			outcome:  OutcomeComplete,
		},
		{
			name:     "extraction failed is a partial failure",
			status:   &dealdesk.StatusResponse{OCRStatus: "completed", ExtractionStatus: "failed", ExtractionError: "no tables found"},
			label:    "OCR done but extraction failed: no tables found",
			terminal: true,
			changed:  true,
			outcome:  OutcomeExtractionFailed,
		},
		{
			name:     "extraction failed without message falls back to Unknown",
			status:   &dealdesk.StatusResponse{OCRStatus: "completed", ExtractionStatus: "failed"},
			label:    "OCR done but extraction failed: Unknown",
			terminal: true,
			changed:  true,
			outcome:  OutcomeExtractionFailed,
		},
		{
			name:    "ocr completed extraction pending",
			status:  &dealdesk.StatusResponse{OCRStatus: "completed", ExtractionStatus: "pending"},
			label:   "Stage 2/2: starting extraction",
			changed: true,
		},
		{
			name:    "ocr completed extraction absent",
			status:  &dealdesk.StatusResponse{OCRStatus: "completed"},
			label:   "Stage 2/2: starting extraction",
			changed: true,
		},
		{
			name:   "ocr pending is no visible change",
			status: &dealdesk.StatusResponse{OCRStatus: "pending"},
		},
		{
			name:   "empty payload is no visible change",
			status: &dealdesk.StatusResponse{},
		},
		{
			name: "nil payload is no visible change",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stage := DeriveStage(tt.status)
			assert.Equal(t, tt.label, stage.Label)
			assert.Equal(t, tt.terminal, stage.Terminal)
			assert.Equal(t, tt.changed, stage.Changed)
			assert.Equal(t, tt.outcome, stage.Outcome)
		})
	}
}
