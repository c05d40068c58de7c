package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/finny-import/internal/encoding"
	"github.com/MrJamesThe3rd/finny-import/internal/ingest"
)

var (
	// ErrFileRejected wraps every gate rejection.
	ErrFileRejected = errors.New("file rejected")
	// ErrUnsupportedFormat is returned for admitted files that are not text.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Report is the outcome of importing one file.
type Report struct {
	Filename string
	Charset  encoding.Charset
	// FilenameLayout is the layout suggested by the file name, if any.
	FilenameLayout ingest.Layout
	*ingest.Result
}

// Detection is the pre-classification of a file without a full parse.
type Detection struct {
	FilenameLayout  ingest.Layout
	FilenameMatched bool
	Classification  ingest.Classification
}

type Service struct {
	parser      *ingest.Parser
	maxFileSize int64
	log         *slog.Logger
}

type Option func(*Service)

func WithMaxFileSize(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxFileSize = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

func NewService(parser *ingest.Parser, opts ...Option) *Service {
	s := &Service{
		parser:      parser,
		maxFileSize: DefaultMaxFileSize,
		log:         slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Validate runs the admissibility gate with the configured size limit.
func (s *Service) Validate(name string, size int64) Validation {
	return validateFile(name, size, s.maxFileSize)
}

// Import gates, decodes and parses one uploaded file.
func (s *Service) Import(ctx context.Context, name string, r io.Reader) (*Report, error) {
	content, cs, err := s.read(name, r)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := s.parser.Parse(content)
	if err != nil {
		s.log.WarnContext(ctx, "import failed", "file", name, "charset", cs, "error", err)
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	hint, _ := ingest.LayoutFromFilename(name)

	if hint != "" && hint != res.Layout {
		s.log.DebugContext(ctx, "file name suggests another layout",
			"file", name, "filename_layout", hint, "layout", res.Layout)
	}

	s.log.InfoContext(ctx, "import parsed",
		"file", name,
		"charset", cs,
		"layout", res.Layout,
		"rows", res.Rows,
		"accepted", len(res.Transactions),
		"rejected", res.Rejected(),
	)

	return &Report{
		Filename:       name,
		Charset:        cs,
		FilenameLayout: hint,
		Result:         res,
	}, nil
}

// Detect runs both layout sniffers without parsing rows.
func (s *Service) Detect(name string, r io.Reader) (*Detection, error) {
	content, _, err := s.read(name, r)
	if err != nil {
		return nil, err
	}

	c, err := ingest.DetectLayout(content)
	if err != nil {
		return nil, fmt.Errorf("detect %s: %w", name, err)
	}

	hint, ok := ingest.LayoutFromFilename(name)

	return &Detection{
		FilenameLayout:  hint,
		FilenameMatched: ok,
		Classification:  c,
	}, nil
}

// read gates name, reads at most maxFileSize bytes and decodes them.
func (s *Service) read(name string, r io.Reader) (string, encoding.Charset, error) {
	if v := s.Validate(name, 0); !v.Valid {
		return "", "", fmt.Errorf("%w: %s", ErrFileRejected, v.Error)
	}

	if ext := strings.ToLower(filepath.Ext(name)); ext != ".csv" {
		return "", "", fmt.Errorf("%w: %s files are not parsed, export the statement as CSV", ErrUnsupportedFormat, ext)
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxFileSize+1))
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", name, err)
	}

	if v := s.Validate(name, int64(len(data))); !v.Valid {
		return "", "", fmt.Errorf("%w: %s", ErrFileRejected, v.Error)
	}

	content, cs, err := encoding.ToUTF8(data)
	if err != nil {
		return "", "", fmt.Errorf("decode %s: %w", name, err)
	}

	return content, cs, nil
}
