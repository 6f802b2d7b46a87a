package dto

import (
	"fmt"
	"mime/multipart"
	"strings"
)

var validUploadExtensions = []string{".pdf", ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".txt"}

// DocumentUploadRequest is a single scanned or digital document upload.
type DocumentUploadRequest struct {
	File     *multipart.FileHeader
	Password string
}

// Validate validates the upload request
func (r *DocumentUploadRequest) Validate(maxSize int64) error {
	if r.File == nil {
		return ErrMissingFile
	}
	if maxSize > 0 && r.File.Size > maxSize {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, r.File.Size, maxSize)
	}

	filename := strings.ToLower(r.File.Filename)
	for _, ext := range validUploadExtensions {
		if strings.HasSuffix(filename, ext) {
			return nil
		}
	}
	return ErrUnsupportedFileType
}

type CombineRequest struct {
	Ratings []RatingInput `json:"ratings"`
}

type EvidenceMapRequest struct {
	Conditions []CombatCondition `json:"conditions"`
	Evidence   []EvidenceItem    `json:"evidence"`
}

// EstimateRequest carries already-acquired page text for both documents plus
// the veteran-supplied inputs. Either document may be absent.
type EstimateRequest struct {
	DD214Pages          []string               `json:"dd214_pages,omitempty"`
	RatingDecisionPages []string               `json:"rating_decision_pages,omitempty"`
	Edits               []ConditionEdit        `json:"edits,omitempty"`
	CombatFlags         map[string]CombatFlags `json:"combat_flags,omitempty"`
	Evidence            []EvidenceItem         `json:"evidence,omitempty"`
	RetiredPayAmount    float64                `json:"retired_pay_amount"`
	VAWaiverAmount      float64                `json:"va_waiver_amount"`
	// IsRetired overrides the DD-214 retirement flag when set.
	IsRetired *bool `json:"is_retired,omitempty"`
}
