package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Aashish23092/va-benefits-estimator/client"
	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/Aashish23092/va-benefits-estimator/metrics"
)

// lowConfidence is the mean OCR word confidence below which a document is
// flagged for manual review.
const lowConfidence = 60.0

// OCRClient is satisfied by client.TesseractClient.
type OCRClient interface {
	ExtractTextAndQuality(imagePath string) (string, float64, error)
}

type DocumentService struct {
	ocr          OCRClient
	pdfProcessor PDFProcessor
	cache        *TextCache
	metrics      *metrics.Metrics
	logger       *zap.Logger
	concurrency  int
	minChars     int
}

type DocumentOptions struct {
	// OCRConcurrency bounds the pages OCRed at once.
	OCRConcurrency int
	// MinTextLayerChars is the text-layer length below which a PDF page is
	// treated as scanned.
	MinTextLayerChars int
}

func NewDocumentService(
	ocr OCRClient,
	pdfProcessor PDFProcessor,
	cache *TextCache,
	m *metrics.Metrics,
	logger *zap.Logger,
	opts DocumentOptions,
) *DocumentService {
	if opts.OCRConcurrency < 1 {
		opts.OCRConcurrency = 1
	}
	return &DocumentService{
		ocr:          ocr,
		pdfProcessor: pdfProcessor,
		cache:        cache,
		metrics:      m,
		logger:       logger,
		concurrency:  opts.OCRConcurrency,
		minChars:     opts.MinTextLayerChars,
	}
}

// ExtractText acquires per-page text for one upload. PDFs use the embedded
// text layer and fall back to OCR page by page; images are OCRed; .txt files
// are read as-is with form feeds separating pages.
func (s *DocumentService) ExtractText(ctx context.Context, filename string, data []byte, password string) (dto.DocumentText, error) {
	if s.cache != nil {
		if doc, ok := s.cache.Get(data, password); ok {
			s.logger.Debug("page text served from cache", zap.String("filename", filename))
			doc.Filename = filename
			return doc, nil
		}
	}

	var (
		doc dto.DocumentText
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".pdf":
		doc, err = s.extractPDF(ctx, data, password)
	case ".txt":
		doc, err = plainText(data)
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
		doc, err = s.extractImage(data, ext)
	default:
		return dto.DocumentText{}, dto.ErrUnsupportedFileType
	}
	if err != nil {
		return dto.DocumentText{}, fmt.Errorf("%s: %w", filename, err)
	}

	doc.Filename = filename
	doc.PageCount = len(doc.Pages)
	if strings.TrimSpace(strings.Join(doc.Pages, "")) == "" {
		return dto.DocumentText{}, fmt.Errorf("%s: %w", filename, dto.ErrNoText)
	}
	if doc.Source != dto.TextSourceTextLayer && doc.Source != dto.TextSourcePlain && doc.OcrConfidence < lowConfidence {
		doc.Issues = append(doc.Issues, "low_quality_document")
	}

	s.logger.Info("document text acquired",
		zap.String("filename", filename),
		zap.Int("pages", doc.PageCount),
		zap.String("source", string(doc.Source)),
		zap.Float64("ocr_confidence", doc.OcrConfidence),
		zap.Strings("issues", doc.Issues),
	)
	if s.cache != nil {
		s.cache.Set(data, password, doc)
	}
	return doc, nil
}

func plainText(data []byte) (dto.DocumentText, error) {
	if !utf8.Valid(data) {
		return dto.DocumentText{}, fmt.Errorf("%w: text file is not valid UTF-8", dto.ErrNoText)
	}
	return dto.DocumentText{
		Pages:  strings.Split(string(data), "\f"),
		Source: dto.TextSourcePlain,
	}, nil
}

func (s *DocumentService) extractImage(data []byte, ext string) (dto.DocumentText, error) {
	tempFile, err := client.CreateTempFile(bytes.NewReader(data), "upload"+ext)
	if err != nil {
		return dto.DocumentText{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile)

	text, conf, err := s.ocrFile(tempFile)
	if err != nil {
		return dto.DocumentText{}, fmt.Errorf("image OCR failed: %w", err)
	}
	return dto.DocumentText{
		Pages:         []string{text},
		Source:        dto.TextSourceOCR,
		OcrConfidence: conf,
	}, nil
}

// pageOCR is the outcome of OCR on one PDF page.
type pageOCR struct {
	done       bool
	text       string
	confidence float64
}

func (s *DocumentService) extractPDF(ctx context.Context, data []byte, password string) (dto.DocumentText, error) {
	var doc dto.DocumentText

	pages, err := s.pdfProcessor.ExtractPages(data, password)
	if err != nil {
		s.logger.Warn("pdf text extraction failed", zap.Error(err))
		doc.Issues = append(doc.Issues, "pdf_text_extraction_failed")
	}

	if len(pages) == 0 {
		// No usable page structure: OCR every image in the document as
		// its own page.
		images, imgErr := s.pdfProcessor.ExtractImages(data, password, 0)
		if imgErr != nil || len(images) == 0 {
			s.logger.Warn("pdf image extraction failed", zap.Error(imgErr))
			doc.Issues = append(doc.Issues, "pdf_image_extraction_failed")
			return doc, nil
		}
		doc.Pages = make([]string, len(images))
		all := make([]int, len(images))
		for i := range all {
			all[i] = i
		}
		results := make([]pageOCR, len(images))
		if err := s.ocrPages(ctx, all, results, func(i int) pageOCR {
			return s.ocrImages(images[i : i+1])
		}); err != nil {
			return dto.DocumentText{}, err
		}
		s.mergeOCR(&doc, results)
		return doc, nil
	}

	doc.Pages = pages
	var scanned []int
	for i, p := range pages {
		if len(strings.TrimSpace(p)) < s.minChars {
			scanned = append(scanned, i)
		}
	}
	if len(scanned) == 0 {
		doc.Source = dto.TextSourceTextLayer
		return doc, nil
	}

	s.logger.Info("pdf pages have minimal text, attempting image-based OCR", zap.Ints("pages", scanned))
	results := make([]pageOCR, len(pages))
	err = s.ocrPages(ctx, scanned, results, func(i int) pageOCR {
		images, err := s.pdfProcessor.ExtractImages(data, password, i+1)
		if err != nil || len(images) == 0 {
			s.logger.Warn("no page image to OCR", zap.Int("page", i+1), zap.Error(err))
			return pageOCR{}
		}
		return s.ocrImages(images)
	})
	if err != nil {
		return dto.DocumentText{}, err
	}
	s.mergeOCR(&doc, results)
	if len(scanned) < len(pages) && doc.Source == dto.TextSourceOCR {
		doc.Source = dto.TextSourceMixed
	}
	return doc, nil
}

// ocrPages runs job for each listed page with at most s.concurrency in
// flight, storing results by page index. Job failures leave the page as it
// was; only cancellation aborts the run.
func (s *DocumentService) ocrPages(ctx context.Context, pages []int, results []pageOCR, job func(int) pageOCR) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, page := range pages {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[page] = job(page)
			return nil
		})
	}
	return g.Wait()
}

func (s *DocumentService) ocrImages(images []image.Image) pageOCR {
	var (
		sb    strings.Builder
		total float64
		count int
	)
	for _, img := range images {
		tempImgFile, err := saveImageToTempFile(img)
		if err != nil {
			s.logger.Warn("failed to save temporary image for OCR", zap.Error(err))
			continue
		}
		text, conf, err := s.ocrFile(tempImgFile)
		os.Remove(tempImgFile)
		if err != nil {
			s.logger.Warn("OCR failed for a page image", zap.Error(err))
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
		total += conf
		count++
	}
	if count == 0 {
		return pageOCR{}
	}
	return pageOCR{done: true, text: sb.String(), confidence: total / float64(count)}
}

func (s *DocumentService) ocrFile(path string) (string, float64, error) {
	start := time.Now()
	text, conf, err := s.ocr.ExtractTextAndQuality(path)
	if s.metrics != nil {
		s.metrics.ObserveOCR(time.Since(start))
	}
	return text, conf, err
}

// mergeOCR writes OCR text over the pages it ran for and sets the source and
// mean confidence.
func (s *DocumentService) mergeOCR(doc *dto.DocumentText, results []pageOCR) {
	var (
		total float64
		count int
	)
	for i, r := range results {
		if !r.done {
			continue
		}
		doc.Pages[i] = r.text
		total += r.confidence
		count++
	}
	if count == 0 {
		doc.Issues = append(doc.Issues, "scanned_pdf_ocr_failed")
		doc.Source = dto.TextSourceTextLayer
		return
	}
	doc.Source = dto.TextSourceOCR
	doc.OcrConfidence = total / float64(count)
}

// saveImageToTempFile saves an image.Image to a temporary PNG file.
func saveImageToTempFile(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "ocr-img-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("failed to encode image to PNG: %w", err)
	}

	return tempFile.Name(), nil
}
