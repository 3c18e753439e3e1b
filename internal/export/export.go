// Package export turns rendered resume HTML into downloadable artifacts.
// PDF goes through headless Chrome; HTML and Word are plain transformations.
package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Format selects the output artifact.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
	FormatWord Format = "word"
)

// ErrUnknownFormat is returned for formats outside the supported set.
var ErrUnknownFormat = errors.New("unknown export format")

// Artifact is one finished export.
type Artifact struct {
	Data        []byte
	ContentType string
	Filename    string
}

// PDFRenderer prints HTML to PDF bytes. The chromedp implementation lives
// in this package; tests substitute their own.
type PDFRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// Exporter produces artifacts from rendered HTML.
type Exporter struct {
	pdf     PDFRenderer
	timeout time.Duration
}

// New creates an Exporter. timeout bounds a single PDF print.
func New(pdf PDFRenderer, timeout time.Duration) *Exporter {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Exporter{pdf: pdf, timeout: timeout}
}

// ParseFormat maps a request string onto a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatHTML:
		return FormatHTML, nil
	case FormatWord:
		return FormatWord, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Export produces the artifact for one format. A PDF failure is terminal for
// the attempt: there is no retry, the caller surfaces the error.
func (e *Exporter) Export(ctx context.Context, html string, format Format) (*Artifact, error) {
	switch format {
	case FormatHTML:
		return &Artifact{
			Data:        []byte(html),
			ContentType: "text/html; charset=utf-8",
			Filename:    "resume.html",
		}, nil
	case FormatWord:
		return &Artifact{
			Data:        []byte(WrapWord(html)),
			ContentType: "application/msword",
			Filename:    "resume.doc",
		}, nil
	case FormatPDF:
		ctx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()

		data, err := e.pdf.RenderHTMLToPDF(ctx, html)
		if err != nil {
			return nil, fmt.Errorf("pdf export: %w", err)
		}
		return &Artifact{
			Data:        data,
			ContentType: "application/pdf",
			Filename:    "resume.pdf",
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WrapWord embeds rendered markup in the Office namespace wrapper Word
// accepts as a .doc file.
func WrapWord(html string) string {
	var b strings.Builder
	b.WriteString("<html xmlns:o='urn:schemas-microsoft-com:office:office' xmlns:w='urn:schemas-microsoft-com:office:word'>\n")
	b.WriteString("<head>\n<meta charset=\"utf-8\">\n<title>Resume</title>\n</head>\n<body>\n")
	b.WriteString(html)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}
