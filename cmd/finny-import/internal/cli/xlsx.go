package cli

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/finny-import/internal/ingest"
	"github.com/MrJamesThe3rd/finny-import/internal/transaction"
)

var transactionHeader = []string{"ID", "Type", "Description", "Amount", "Date", "PostingDate", "Category", "Status", "Recurring"}

// writeTemplateXLSX writes the template rows of layout to a one-sheet workbook.
func writeTemplateXLSX(path string, layout ingest.Layout) error {
	header, rows, err := ingest.TemplateRows(layout)
	if err != nil {
		return err
	}

	data := make([][]any, 0, len(rows))
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}

		data = append(data, cells)
	}

	return writeSheet(path, layout.String(), header, data)
}

// writeTransactionsXLSX writes normalized transactions with numeric amounts.
func writeTransactionsXLSX(path string, txs []transaction.Transaction) error {
	data := make([][]any, 0, len(txs))

	for _, tx := range txs {
		recurring := "No"
		if tx.IsRecurring {
			recurring = "Yes"
		}

		data = append(data, []any{
			tx.ID,
			string(tx.Type),
			tx.Description,
			tx.Amount.InexactFloat64(),
			tx.Date,
			tx.PostingDate,
			tx.Category,
			string(tx.Status),
			recurring,
		})
	}

	return writeSheet(path, "transactions", transactionHeader, data)
}

func writeSheet(path, sheet string, header []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}

	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	return nil
}
