package tools

/**
Writes accumulated sweep results to a spreadsheet (.xlsx) or a .csv file
*/

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"stocksweep/config"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ResultHeader is the first row of every export
var ResultHeader = []string{"L1 SL%", "L2 SL%", "Entry Time", "Overall Profit", "Expectancy"}

// ExportResults writes the header and one row per record to fileName.
// The format follows the extension; anything but .csv is written as a workbook.
func ExportResults(records []ResultRecord, fileName string) error {
	if err := EnsureParentDir(fileName); err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(fileName), ".csv") {
		return exportCSV(records, fileName)
	}
	return exportWorkbook(records, fileName)
}

func exportWorkbook(records []ResultRecord, fileName string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := config.ResultsSheet
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(ResultHeader))
	for i, h := range ResultHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.L1StopLoss, r.L2StopLoss, r.EntryTime(), r.OverallProfit, r.Expectancy}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	// Cosmetic only
	if bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(sheet, 1, 1, bold)
	}
	_ = f.SetColWidth(sheet, "A", "C", 12)
	_ = f.SetColWidth(sheet, "D", "E", 18)

	if err := f.SaveAs(fileName); err != nil {
		return fmt.Errorf("failed to save %s: %w", fileName, err)
	}
	return nil
}

func exportCSV(records []ResultRecord, fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", fileName, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(ResultHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, r := range records {
		row := []string{
			strconv.Itoa(r.L1StopLoss),
			strconv.Itoa(r.L2StopLoss),
			r.EntryTime(),
			r.OverallProfit,
			r.Expectancy,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", fileName, err)
	}
	return file.Close()
}
