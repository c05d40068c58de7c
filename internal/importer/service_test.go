package importer_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finny-import/internal/encoding"
	"github.com/MrJamesThe3rd/finny-import/internal/importer"
	"github.com/MrJamesThe3rd/finny-import/internal/ingest"
)

func newService(t *testing.T, opts ...importer.Option) (*importer.Service, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer

	parser := ingest.NewParser(ingest.WithIDSource(ingest.NewSequenceIDs("t")))
	opts = append([]importer.Option{importer.WithLogger(slog.New(slog.NewTextHandler(&logs, nil)))}, opts...)

	return importer.NewService(parser, opts...), &logs
}

func TestService_Import(t *testing.T) {
	svc, logs := newService(t)

	input := "Data;Histórico;Valor\n01/03/2025;Salário;1500,00\n05/03/2025;Aluguel;-800,00\n"

	report, err := svc.Import(context.Background(), "extrato_marco.csv", strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "extrato_marco.csv", report.Filename)
	assert.Equal(t, encoding.UTF8, report.Charset)
	assert.Equal(t, ingest.LayoutExtrato, report.FilenameLayout)
	assert.Equal(t, ingest.LayoutExtrato, report.Layout)
	require.Len(t, report.Transactions, 2)
	assert.Equal(t, "Salário", report.Transactions[0].Description)

	assert.Contains(t, logs.String(), "import parsed")
	assert.Contains(t, logs.String(), "accepted=2")
}

func TestService_Import_Latin1(t *testing.T) {
	svc, _ := newService(t)

	// "Tipo,Descrição,Valor,Data" header and one row in cp1252.
	input := []byte("Tipo,Descri\xe7\xe3o,Valor,Data\nDespesa,Pa\xe7oca,3,50,01/02/2025\n")
	input = bytes.Replace(input, []byte("3,50"), []byte(`"3,50"`), 1)

	report, err := svc.Import(context.Background(), "planilha.csv", bytes.NewReader(input))
	require.NoError(t, err)

	require.Len(t, report.Transactions, 1)
	assert.Equal(t, "Paçoca", report.Transactions[0].Description)
	assert.Equal(t, "3.50", report.Transactions[0].Amount.StringFixed(2))
}

func TestService_Import_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		opts    []importer.Option
		wantErr error
	}{
		{name: "Extension", file: "notes.txt", body: "x", wantErr: importer.ErrFileRejected},
		{name: "Spreadsheet", file: "planilha.xlsx", body: "PK", wantErr: importer.ErrUnsupportedFormat},
		{name: "PDF", file: "statement.pdf", body: "%PDF", wantErr: importer.ErrUnsupportedFormat},
		{
			name:    "TooLarge",
			file:    "big.csv",
			body:    strings.Repeat("x", 64),
			opts:    []importer.Option{importer.WithMaxFileSize(16)},
			wantErr: importer.ErrFileRejected,
		},
		{name: "HeaderOnly", file: "a.csv", body: "Type,Description,Amount,Date\n", wantErr: ingest.ErrTooFewLines},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t, tt.opts...)

			_, err := svc.Import(context.Background(), tt.file, strings.NewReader(tt.body))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Import_TypeError(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Import(context.Background(), "a.csv",
		strings.NewReader("Type,Description,Amount,Date\nTransfer,Move,10,01/01/2025\n"))

	var typeErr *ingest.TypeError
	assert.True(t, errors.As(err, &typeErr))
}

func TestService_Import_Cancelled(t *testing.T) {
	svc, _ := newService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Import(ctx, "a.csv", strings.NewReader("Type,Description,Amount,Date\nIncome,A,1,01/01/2025\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

func TestService_Import_ReadError(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Import(context.Background(), "a.csv", failingReader{})
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestService_Detect(t *testing.T) {
	svc, _ := newService(t)

	d, err := svc.Detect("open_finance_fev.csv", strings.NewReader("Date,Type,Amount,Description,Account\n"))
	require.NoError(t, err)

	assert.True(t, d.FilenameMatched)
	assert.Equal(t, ingest.LayoutOpenFinance, d.FilenameLayout)
	assert.Equal(t, ingest.LayoutOpenFinance, d.Classification.Layout)
	assert.Equal(t, 5, d.Classification.Columns)
}

func TestService_Detect_Empty(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Detect("a.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, ingest.ErrTooFewLines)
}

func TestService_Validate_UsesConfiguredLimit(t *testing.T) {
	svc, _ := newService(t, importer.WithMaxFileSize(10))

	assert.True(t, svc.Validate("a.csv", 10).Valid)
	assert.False(t, svc.Validate("a.csv", 11).Valid)
}
