package poller

import (
	"fmt"

	"github.com/sells-group/dealdesk-cli/pkg/dealdesk"
)

// Outcome classifies a terminal stage observation.
type Outcome string

const (
	// OutcomeNone marks a non-terminal stage.
	OutcomeNone = Outcome("")
	// OutcomeComplete marks a fully analyzed document.
	OutcomeComplete = Outcome("complete")
	// OutcomeOCRFailed marks a failure in the first pipeline stage.
	OutcomeOCRFailed = Outcome("ocr_failed")
	// OutcomeExtractionFailed marks a partial failure: OCR output exists but
	// the extraction stage failed.
	OutcomeExtractionFailed = Outcome("extraction_failed")
)

// Stage is one derived pipeline stage observation. Changed is false when the
// status payload matched no known case; the previous visible stage stands and
// polling continues.
type Stage struct {
	Label    string  `json:"label"`
	Terminal bool    `json:"terminal"`
	Changed  bool    `json:"-"`
	Outcome  Outcome `json:"outcome,omitempty"`
}

// fallbackError substitutes the literal used when the backend omits a
// failure message.
func fallbackError(msg string) string {
	if msg == "" {
		return "Unknown"
	}
	return msg
}

// displayName resolves the document's display identifier: company name when
// extraction found one, the uploaded filename otherwise.
func displayName(s *dealdesk.StatusResponse) string {
	if s.CompanyName != "" {
		return s.CompanyName
	}
	return s.Filename
}

// DeriveStage translates a raw status payload into a stage observation.
// Cases are evaluated in precedence order; the first match wins:
//
//  1. OCR processing                       -> stage 1, polling continues
//  2. OCR failed                           -> terminal
//  3. OCR completed, extraction processing -> stage 2, polling continues
//  4. extraction completed                 -> terminal
//  5. extraction failed                    -> terminal partial failure
//  6. OCR completed, extraction pending    -> stage 2 queued, polling continues
//  7. anything else                        -> no visible change
//
// Extraction progress is never claimed before OCR completes: cases 3 and 6
// require ocr_status == completed, and a malformed payload lands in case 7.
func DeriveStage(s *dealdesk.StatusResponse) Stage {
	if s == nil {
		return Stage{}
	}

	switch {
	case s.OCRStatus == dealdesk.StatusProcessing:
		return Stage{Label: "Stage 1/2: extracting text", Changed: true}

	case s.OCRStatus == dealdesk.StatusFailed:
		return Stage{
			Label:    fmt.Sprintf("OCR failed: %s", fallbackError(s.ErrorMessage)),
			Terminal: true,
			Changed:  true,
			Outcome:  OutcomeOCRFailed,
		}

	case s.OCRStatus == dealdesk.StatusCompleted && s.ExtractionStatus == dealdesk.StatusProcessing:
		return Stage{Label: "Stage 2/2: analyzing financials", Changed: true}

	case s.ExtractionStatus == dealdesk.StatusCompleted:
		return Stage{
			Label:    fmt.Sprintf("Analysis complete: %s", displayName(s)),
			Terminal: true,
			Changed:  true,
			Outcome:  OutcomeComplete,
		}

	case s.ExtractionStatus == dealdesk.StatusFailed:
		return Stage{
			Label:    fmt.Sprintf("OCR done but extraction failed: %s", fallbackError(s.ExtractionError)),
			Terminal: true,
			Changed:  true,
			Outcome:  OutcomeExtractionFailed,
		}

	case s.OCRStatus == dealdesk.StatusCompleted &&
		(s.ExtractionStatus == "" || s.ExtractionStatus == dealdesk.StatusPending):
		return Stage{Label: "Stage 2/2: starting extraction", Changed: true}

	default:
		return Stage{}
	}
}
