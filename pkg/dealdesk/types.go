package dealdesk

// StatusResponse is the payload of GET /api/documents/{id}/status.
type StatusResponse struct {
	DocumentID       int64    `json:"document_id"`
	Filename         string   `json:"filename"`
	Status           string   `json:"status"`
	OCRStatus        string   `json:"ocr_status"`
	OCRConfidence    *float64 `json:"ocr_confidence,omitempty"`
	PageCount        int      `json:"page_count,omitempty"`
	WordCount        int      `json:"word_count,omitempty"`
	OCRCompletedAt   string   `json:"ocr_completed_at,omitempty"`
	ErrorMessage     string   `json:"error_message,omitempty"`
	ExtractionStatus string   `json:"extraction_status"`
	ExtractionError  string   `json:"extraction_error,omitempty"`
	CompanyName      string   `json:"company_name,omitempty"`
	ConfidenceScore  *float64 `json:"confidence_score,omitempty"`
}

// Pipeline status values reported by the backend for both the OCR and the
// extraction stage.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Financials holds the extracted metric arrays. Historical arrays carry three
// positions, projection arrays five; absent figures are null.
type Financials struct {
	NetRevenueHist   []*float64 `json:"net_revenue_hist"`
	GrossProfitHist  []*float64 `json:"gross_profit_hist"`
	SGAHist          []*float64 `json:"sga_hist"`
	AdjustmentsHist  []*float64 `json:"adjustments_hist"`
	AdjEBITDAHist    []*float64 `json:"adj_ebitda_hist"`
	DepreciationHist []*float64 `json:"depreciation_hist"`
	CapexHist        []*float64 `json:"capex_hist"`
	NetRevenueProj   []*float64 `json:"net_revenue_proj"`
	GrossProfitProj  []*float64 `json:"gross_profit_proj"`
	SGAProj          []*float64 `json:"sga_proj"`
	AdjustmentsProj  []*float64 `json:"adjustments_proj"`
	AdjEBITDAProj    []*float64 `json:"adj_ebitda_proj"`
	DepreciationProj []*float64 `json:"depreciation_proj"`
	CapexProj        []*float64 `json:"capex_proj"`
	MgmtFeesProj     []*float64 `json:"mgmt_fees_proj"`
}

// Deal holds transaction-level figures.
type Deal struct {
	EntryMultiple           *float64 `json:"entry_multiple"`
	PurchasePriceCalculated *float64 `json:"purchase_price_calculated"`
	EBITDAForPrice          *float64 `json:"ebitda_for_price"`
	RevenueLTM              *float64 `json:"revenue_ltm"`
	EBITDALTM               *float64 `json:"ebitda_ltm"`
}

// Collateral holds ABL collateral figures.
type Collateral struct {
	ARValue        *float64 `json:"ar_value"`
	InventoryValue *float64 `json:"inventory_value"`
}

// Rates holds financing rates.
type Rates struct {
	ABLRate  *float64 `json:"abl_rate"`
	TermRate *float64 `json:"term_rate"`
}

// Extraction is the structured financial extraction produced by the backend
// for one document. FieldSources maps "metric_key" or "metric_key_{index}" to
// a provenance tag; the underscore-prefixed arrays describe automatic fixes
// applied upstream, in application order.
type Extraction struct {
	CompanyName string `json:"company_name,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Geography   string `json:"geography,omitempty"`

	HistoricalYears []string `json:"historical_years,omitempty"`
	ProjectionYears []string `json:"projection_years,omitempty"`

	Financials Financials `json:"financials"`
	Deal       Deal       `json:"deal"`
	Collateral Collateral `json:"collateral"`
	Rates      Rates      `json:"rates"`

	FieldSources       map[string]string `json:"field_sources,omitempty"`
	CorrectionsApplied []string          `json:"_corrections_applied,omitempty"`
	DerivationsApplied []string          `json:"_derivations_applied,omitempty"`

	ConfidenceScore *float64 `json:"confidence_score,omitempty"`
}

// AnalysisResponse is the payload of GET /api/documents/{id}/analysis.
// Extraction is nil until the extraction stage completes.
type AnalysisResponse struct {
	DocumentID       int64       `json:"document_id"`
	Filename         string      `json:"filename"`
	Size             int64       `json:"size,omitempty"`
	UploadDate       string      `json:"upload_date,omitempty"`
	OCRStatus        string      `json:"ocr_status"`
	OCRConfidence    *float64    `json:"ocr_confidence,omitempty"`
	PageCount        int         `json:"page_count,omitempty"`
	WordCount        int         `json:"word_count,omitempty"`
	ExtractionStatus string      `json:"extraction_status"`
	ExtractionError  string      `json:"extraction_error,omitempty"`
	CompanyName      string      `json:"company_name,omitempty"`
	Industry         string      `json:"industry,omitempty"`
	Geography        string      `json:"geography,omitempty"`
	HistoricalYears  []string    `json:"historical_years,omitempty"`
	ProjectionYears  []string    `json:"projection_years,omitempty"`
	ConfidenceScore  *float64    `json:"confidence_score,omitempty"`
	Extraction       *Extraction `json:"extraction"`
}

// DocumentSummary is one entry of GET /api/documents.
type DocumentSummary struct {
	ID               int64  `json:"id"`
	Filename         string `json:"filename,omitempty"`
	OriginalName     string `json:"original_name"`
	Size             int64  `json:"size,omitempty"`
	UploadDate       string `json:"upload_date,omitempty"`
	Status           string `json:"status,omitempty"`
	OCRStatus        string `json:"ocr_status"`
	ExtractionStatus string `json:"extraction_status"`
	CompanyName      string `json:"company_name,omitempty"`
}

// DashboardResponse is the payload of GET /api/dashboard.
type DashboardResponse struct {
	Total                   int               `json:"total"`
	Analyzed                int               `json:"analyzed"`
	Pending                 int               `json:"pending"`
	Failed                  int               `json:"failed"`
	Accuracy                float64           `json:"accuracy"`
	FullyAnalyzed           int               `json:"fully_analyzed"`
	AvgExtractionConfidence float64           `json:"avg_extraction_confidence"`
	AvgEntryMultiple        float64           `json:"avg_entry_multiple"`
	TotalDealValue          float64           `json:"total_deal_value"`
	Recent                  []DocumentSummary `json:"recent"`
}

// UploadedDocument is one accepted file from POST /api/upload.
type UploadedDocument struct {
	ID           int64  `json:"id"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	Status       string `json:"status"`
	Message      string `json:"message"`
}

// UploadResponse is the payload of POST /api/upload.
type UploadResponse struct {
	Uploaded []UploadedDocument `json:"uploaded"`
}

// FieldAccuracy is the per-field result of a ground-truth comparison.
type FieldAccuracy struct {
	Status    string `json:"status"`
	Expected  any    `json:"expected,omitempty"`
	Extracted any    `json:"extracted,omitempty"`
	ErrorPct  string `json:"error_pct,omitempty"`
	Error     string `json:"error,omitempty"`
}

// AccuracyResponse is the payload of GET /api/documents/{id}/accuracy.
type AccuracyResponse struct {
	AccuracyScore      float64                  `json:"accuracy_score"`
	FieldsChecked      int                      `json:"fields_checked"`
	FieldsCorrect      int                      `json:"fields_correct"`
	FieldsWrong        int                      `json:"fields_wrong"`
	FieldAccuracy      map[string]FieldAccuracy `json:"field_accuracy"`
	CorrectionsApplied []string                 `json:"corrections_applied"`
}

// Settings is the key/value map served by the settings endpoints.
type Settings map[string]string
