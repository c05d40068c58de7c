package ingest

import (
	"regexp"
	"strings"
)

// line is a non-blank input line with its 1-based position in the source.
type line struct {
	Number int
	Text   string
}

// splitLines drops blank lines but keeps source numbering.
func splitLines(content string) []line {
	content = strings.TrimPrefix(content, "\ufeff")

	var lines []line

	for i, text := range strings.Split(content, "\n") {
		text = strings.TrimRight(text, "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		lines = append(lines, line{Number: i + 1, Text: text})
	}

	return lines
}

// Header keyword tables, matched against the folded header text.
var (
	statementKeywords = []string{
		"extrato", "statement",
		"conta corrente", "checking account",
		"saldo", "balance",
		"historico", "history",
		"documento", "document",
		"movimento", "movimentacao", "lancamento", "movement",
	}
	creditDebitKeywords = []string{"credito", "debito", "credit", "debit"}
	dateKeywords        = []string{"data", "date"}
	typeKeywords        = []string{"tipo", "type"}
	accountKeywords     = []string{"conta", "account"}
	descriptionKeywords = []string{"descricao", "description"}
	amountKeywords      = []string{"valor", "amount", "montante", "quantia"}
)

// datePrefix matches lines that start with a DD/MM/YYYY or YYYY-MM-DD date.
var datePrefix = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4}|\d{4}-\d{2}-\d{2})`)

// maxTitleLines bounds how far past a one-column title the first data row is
// searched for.
const maxTitleLines = 4

// Classification is the one-time layout decision for a file.
type Classification struct {
	Layout Layout
	// Columns is the number of header fields.
	Columns int
	// DataStart is the index, in non-blank lines, of the first data row.
	DataStart int
	// DataStartLine is the 1-based source line of the first data row, or 0
	// when the input has no data rows.
	DataStartLine int
	Diagnostics   []Diagnostic
}

func classify(lines []line) Classification {
	header := Tokenize(lines[0].Text)

	folded := make([]string, len(header))
	for i, f := range header {
		folded[i] = fold(f)
	}

	text := strings.Join(folded, ",")

	c := Classification{Columns: len(header), DataStart: 1}

	switch {
	case containsAny(text, statementKeywords...):
		c.Layout = LayoutExtrato
	case containsAny(text, creditDebitKeywords...),
		containsAny(text, dateKeywords...) && containsAny(text, typeKeywords...) && containsAny(text, accountKeywords...):
		c.Layout = LayoutOpenFinance
	case containsAny(text, typeKeywords...) && containsAny(text, descriptionKeywords...) && containsAny(text, amountKeywords...):
		c.Layout = LayoutSpreadsheet
	case len(header) == 1:
		c.Layout = LayoutExtrato
		c.Diagnostics = append(c.Diagnostics, warning(lines[0].Number, ReasonSingleColumnHeader,
			"header has a single column %q, reading the file as a bank statement", header[0]))
	default:
		c.Layout = LayoutSpreadsheet
		c.Diagnostics = append(c.Diagnostics, warning(lines[0].Number, ReasonLayoutUncertain,
			"could not recognize the header, assuming the spreadsheet layout"))
	}

	if c.Layout == LayoutExtrato && len(header) == 1 {
		c.DataStart = findDataStart(lines)
	}

	if c.DataStart < len(lines) {
		c.DataStartLine = lines[c.DataStart].Number
	}

	return c
}

// findDataStart skips free-text title lines that some banks put above the
// data instead of a real header.
func findDataStart(lines []line) int {
	for i := 1; i <= maxTitleLines && i < len(lines); i++ {
		if datePrefix.MatchString(Tokenize(lines[i].Text).at(0)) {
			return i
		}
	}

	return 1
}

// DetectLayout classifies content from its header without parsing any rows.
func DetectLayout(content string) (Classification, error) {
	lines := splitLines(content)
	if len(lines) == 0 {
		return Classification{}, ErrTooFewLines
	}

	return classify(lines), nil
}
