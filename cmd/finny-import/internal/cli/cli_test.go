package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/finny-import/internal/http/auth"
)

const extratoCSV = "Data;Histórico;Documento;Valor;Saldo\n" +
	"01/03/2025;Salário;000123;1500,00;1500,00\n" +
	"05/03/2025;Aluguel;000124;-800,00;700,00\n" +
	"xx/03/2025;Tarifa;000125;-9,90;690,10\n"

func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := Execute(args, &stdout, &stderr)

	return stdout.String(), stderr.String(), code
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestParse_JSON(t *testing.T) {
	path := writeFile(t, "extrato_marco.csv", extratoCSV)

	stdout, stderr, code := run(t, "parse", path)
	require.Equal(t, 0, code, stderr)

	var out reportOut
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))

	assert.Equal(t, "extrato", out.Layout)
	assert.Equal(t, 3, out.Rows)
	assert.Equal(t, 1, out.Rejected)
	require.Len(t, out.Transactions, 2)
	assert.Equal(t, "income", out.Transactions[0].Type)
	assert.Equal(t, "800.00", out.Transactions[1].Amount)
	assert.Equal(t, "700.00", out.Stats.Balance)
	require.Len(t, out.Diagnostics, 1)
	assert.Equal(t, 4, out.Diagnostics[0].Line)
	assert.Equal(t, "invalid_date", out.Diagnostics[0].Reason)
}

func TestParse_YAML(t *testing.T) {
	path := writeFile(t, "extrato.csv", extratoCSV)

	stdout, stderr, code := run(t, "parse", path, "-o", "yaml")
	require.Equal(t, 0, code, stderr)

	var out reportOut
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "extrato", out.Layout)
	assert.Len(t, out.Transactions, 2)
}

func TestParse_XLSX(t *testing.T) {
	path := writeFile(t, "extrato.csv", extratoCSV)
	book := filepath.Join(t.TempDir(), "out.xlsx")

	_, stderr, code := run(t, "parse", path, "--xlsx", book)
	require.Equal(t, 0, code, stderr)

	f, err := excelize.OpenFile(book)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("transactions")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, transactionHeader, rows[0])
	assert.Equal(t, "Salário", rows[1][2])
	assert.Equal(t, "1500", rows[1][3])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    func(t *testing.T) []string
		wantErr string
	}{
		{
			name:    "BadFormat",
			args:    func(t *testing.T) []string { return []string{"parse", writeFile(t, "a.csv", extratoCSV), "-o", "xml"} },
			wantErr: "unknown output format",
		},
		{
			name:    "RejectedExtension",
			args:    func(t *testing.T) []string { return []string{"parse", writeFile(t, "a.txt", extratoCSV)} },
			wantErr: "not allowed",
		},
		{
			name:    "HeaderOnly",
			args:    func(t *testing.T) []string { return []string{"parse", writeFile(t, "a.csv", "Type,Description\n")} },
			wantErr: "need a header and at least one data line",
		},
		{
			name:    "Missing",
			args:    func(t *testing.T) []string { return []string{"parse", filepath.Join(t.TempDir(), "nope.csv")} },
			wantErr: "no such file",
		},
		{
			name:    "NoArgs",
			args:    func(*testing.T) []string { return []string{"parse"} },
			wantErr: "accepts 1 arg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := run(t, tt.args(t)...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestDetect(t *testing.T) {
	path := writeFile(t, "open_finance.csv", "Date,Type,Amount,Description,Account\n")

	stdout, stderr, code := run(t, "detect", path)
	require.Equal(t, 0, code, stderr)

	var out detectOut
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "open_finance", out.Layout)
	assert.Equal(t, "open_finance", out.FilenameLayout)
	assert.True(t, out.FilenameMatched)
	assert.Equal(t, 5, out.Columns)
	assert.Zero(t, out.DataStartLine)
}

func TestTemplate_Stdout(t *testing.T) {
	stdout, stderr, code := run(t, "template", "spreadsheet")
	require.Equal(t, 0, code, stderr)

	assert.True(t, strings.HasPrefix(stdout, `"Type","Description","Amount"`))
	assert.Equal(t, 9, strings.Count(stdout, "\n"))
}

func TestTemplate_Files(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "t.csv")
	xlsxPath := filepath.Join(dir, "t.xlsx")

	stdout, stderr, code := run(t, "template", "extrato", "--out", csvPath, "--xlsx", xlsxPath)
	require.Equal(t, 0, code, stderr)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"01/03/2025";"Salary"`)

	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("extrato")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "History", rows[0][1])
	assert.Equal(t, "-800,00", rows[2][3])
}

func TestTemplate_UnknownLayout(t *testing.T) {
	_, stderr, code := run(t, "template", "pdf")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "pdf")
}

func TestToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	stdout, stderr, code := run(t, "token", "--subject", "ops")
	require.Equal(t, 0, code, stderr)

	subject, err := auth.ParseToken([]byte("s3cret"), strings.TrimSpace(stdout))
	require.NoError(t, err)
	assert.Equal(t, "ops", subject)
}

func TestToken_NoSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, stderr, code := run(t, "token")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "JWT_SECRET")
}
