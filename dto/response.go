package dto

import "errors"

var (
	ErrMissingFile         = errors.New("file is required")
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFileType = errors.New("invalid file type. Supported: PDF, PNG, JPG, TIFF, TXT")
	ErrNoText              = errors.New("no text could be extracted from the document")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type TextSource string

const (
	TextSourceTextLayer TextSource = "text_layer"
	TextSourceOCR       TextSource = "ocr"
	TextSourceMixed     TextSource = "mixed"
	TextSourcePlain     TextSource = "plain"
)

// DocumentText is the page text acquired for one upload.
type DocumentText struct {
	Filename      string     `json:"filename"`
	Pages         []string   `json:"-"`
	PageCount     int        `json:"page_count"`
	Source        TextSource `json:"source"`
	OcrConfidence float64    `json:"ocr_confidence,omitempty"`
	Issues        []string   `json:"issues,omitempty"`
}

type DD214Response struct {
	ExtractionID string       `json:"extraction_id"`
	Document     DocumentText `json:"document"`
	Result       DD214Result  `json:"result"`
	ProcessedAt  string       `json:"processed_at"`
}

type RatingDecisionResponse struct {
	ExtractionID string               `json:"extraction_id"`
	Document     DocumentText         `json:"document"`
	Result       RatingDecisionResult `json:"result"`
	Combined     CombinedRatingResult `json:"combined"`
	ProcessedAt  string               `json:"processed_at"`
}

// BenefitReport is the full pipeline output handed to the presentation layer.
type BenefitReport struct {
	ServiceRecord  *DD214Result            `json:"service_record,omitempty"`
	RatingDecision *RatingDecisionResult   `json:"rating_decision,omitempty"`
	Combined       CombinedRatingResult    `json:"combined"`
	CRSC           CRSCComputationResult   `json:"crsc"`
	Evidence       []EvidenceMappingResult `json:"evidence"`
	CrossCheck     CrossCheckResult        `json:"cross_check"`
	Explanation    string                  `json:"explanation"`
	Appeal         AppealStrategy          `json:"appeal"`
	ProcessedAt    string                  `json:"processed_at,omitempty"`
}
