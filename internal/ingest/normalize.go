package ingest

import (
	"regexp"
	"strings"

	"github.com/MrJamesThe3rd/finny-import/internal/transaction"
)

// normalizeType accepts any value containing income/expense (or the
// Portuguese receita/despesa).
func normalizeType(raw string) (transaction.Type, bool) {
	s := fold(raw)

	switch {
	case containsAny(s, "income", "receita"):
		return transaction.TypeIncome, true
	case containsAny(s, "expense", "despesa"):
		return transaction.TypeExpense, true
	}

	return "", false
}

// typeFromCode converts an open-finance credit/debit code. Unknown codes are
// returned untouched for normalizeType to reject.
func typeFromCode(code string) string {
	s := fold(code)

	switch {
	case containsAny(s, "credit", "credito"):
		return string(transaction.TypeIncome)
	case containsAny(s, "debit", "debito"):
		return string(transaction.TypeExpense)
	}

	return code
}

var whitespace = regexp.MustCompile(`\s+`)

var statusAliases = map[string]transaction.Status{
	"efetuado":    transaction.StatusPaid,
	"efetivado":   transaction.StatusPaid,
	"settled":     transaction.StatusPaid,
	"effectuated": transaction.StatusPaid,
	"pago":        transaction.StatusPaid,
	"pendente":    transaction.StatusDue,
	"a_vencer":    transaction.StatusDue,
	"agendado":    transaction.StatusScheduled,
	"vencido":     transaction.StatusOverdue,
	"atrasado":    transaction.StatusOverdue,
	"cancelado":   transaction.StatusCancelled,
	"canceled":    transaction.StatusCancelled,
}

// normalizeStatus never fails: anything unrecognized is paid.
func normalizeStatus(raw string) transaction.Status {
	s := whitespace.ReplaceAllString(strings.TrimSpace(fold(raw)), "_")

	if alias, ok := statusAliases[s]; ok {
		return alias
	}

	if st := transaction.Status(s); st.Valid() {
		return st
	}

	return transaction.StatusPaid
}

func normalizeRecurring(raw string) bool {
	return containsAny(fold(raw), "yes", "sim", "true")
}

// isRepeatedHeader spots header rows repeated inside the data, e.g. when
// several exports were concatenated.
func isRepeatedHeader(rawDate, rawDescription string) bool {
	return containsAny(fold(rawDate), "date", "data") &&
		containsAny(fold(rawDescription), "description", "descricao")
}
