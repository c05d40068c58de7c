package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finny-import/internal/ingest"
)

func TestDetectLayout(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		want        ingest.Layout
		wantWarning ingest.Reason
	}{
		{
			name:    "SpreadsheetEnglish",
			content: "Type,Description,Amount,Date,PostingDate,Category,Status,Recurring\n",
			want:    ingest.LayoutSpreadsheet,
		},
		{
			name:    "SpreadsheetPortuguese",
			content: "Tipo;Descrição;Valor;Data;Data Pagamento;Categoria;Status;Recorrente\n",
			want:    ingest.LayoutSpreadsheet,
		},
		{
			name:    "OpenFinanceByColumns",
			content: "Date,Type,Amount,Description,Account,Category,Status\n",
			want:    ingest.LayoutOpenFinance,
		},
		{
			name:    "OpenFinanceByCreditKeyword",
			content: "Data;Crédito/Débito;Valor;Descrição\n",
			want:    ingest.LayoutOpenFinance,
		},
		{
			name:    "ExtratoByKeyword",
			content: "Date;History;DocumentNo;Amount;Balance\n",
			want:    ingest.LayoutExtrato,
		},
		{
			name:    "StatementKeywordBeatsOpenFinance",
			content: "Date,Type,Amount,Account,Balance,Credit\n",
			want:    ingest.LayoutExtrato,
		},
		{
			name:        "SingleColumnWithoutKeyword",
			content:     "Minha exportação\n01/09/2025;1500,00\n",
			want:        ingest.LayoutExtrato,
			wantWarning: ingest.ReasonSingleColumnHeader,
		},
		{
			name:        "UnknownHeaderDefaultsToSpreadsheet",
			content:     "foo,bar,baz\n",
			want:        ingest.LayoutSpreadsheet,
			wantWarning: ingest.ReasonLayoutUncertain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ingest.DetectLayout(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Layout)

			if tt.wantWarning == "" {
				assert.Empty(t, c.Diagnostics)
				return
			}

			require.Len(t, c.Diagnostics, 1)
			assert.Equal(t, tt.wantWarning, c.Diagnostics[0].Reason)
			assert.Equal(t, ingest.SeverityWarning, c.Diagnostics[0].Severity)
			assert.Equal(t, 1, c.Diagnostics[0].Line)
		})
	}
}

func TestDetectLayout_SkipsStatementTitleLines(t *testing.T) {
	content := `Extrato de conta corrente
Cliente: JOHN DOE
Período: 01/09/2025 a 30/09/2025

01/09/2025;Salário;1500,00
02/09/2025;Mercado;-80,00
`

	c, err := ingest.DetectLayout(content)
	require.NoError(t, err)

	assert.Equal(t, ingest.LayoutExtrato, c.Layout)
	assert.Equal(t, 3, c.DataStart)
	assert.Equal(t, 5, c.DataStartLine)
}

func TestDetectLayout_TitleScanIsBounded(t *testing.T) {
	content := "Extrato\nA\nB\nC\nD\n01/09/2025;1500,00\n"

	c, err := ingest.DetectLayout(content)
	require.NoError(t, err)

	assert.Equal(t, ingest.LayoutExtrato, c.Layout)
	assert.Equal(t, 1, c.DataStart)
}

func TestDetectLayout_Empty(t *testing.T) {
	_, err := ingest.DetectLayout(" \n\n")
	assert.ErrorIs(t, err, ingest.ErrTooFewLines)
}

func TestLayoutFromFilename(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		want   ingest.Layout
		wantOK bool
	}{
		{"Extrato", "uploads/Extrato_Setembro.csv", ingest.LayoutExtrato, true},
		{"Statement", "bank-statement-2025.csv", ingest.LayoutExtrato, true},
		{"OpenFinance", "open_finance_export.csv", ingest.LayoutOpenFinance, true},
		{"Spreadsheet", "Planilha Financeira.xlsx", ingest.LayoutSpreadsheet, true},
		{"TemplateName", ingest.TemplateFilename(ingest.LayoutOpenFinance), ingest.LayoutOpenFinance, true},
		{"NoHint", "export.csv", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ingest.LayoutFromFilename(tt.file)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLayout(t *testing.T) {
	for _, l := range ingest.Layouts {
		got, err := ingest.ParseLayout(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}

	_, err := ingest.ParseLayout("ledger")
	assert.Error(t, err)
}
