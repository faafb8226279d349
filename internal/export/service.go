// Package export renders the admin companies and leads directory as
// downloadable CSV or XLSX files.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/bloomwell/wellness-platform/internal/companies"
	"github.com/bloomwell/wellness-platform/internal/leads"
)

// Format identifies a supported export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a query-string value to a Format. Empty defaults to CSV.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("export: unsupported format %q", s)
	}
}

var companyHeaders = []string{"ID", "Name", "Industry", "Size", "Contact", "Email", "Phone", "City", "Status", "Created"}

var leadHeaders = []string{"ID", "Company", "Contact", "Email", "Phone", "City", "Status", "Created"}

const dateLayout = "2006-01-02"

// Service assembles directory exports from the companies and leads stores.
type Service struct {
	companies companies.Repository
	leads     leads.Repository
}

func NewService(companyRepo companies.Repository, leadRepo leads.Repository) *Service {
	return &Service{companies: companyRepo, leads: leadRepo}
}

func companyRow(c *companies.Company) []string {
	return []string{
		c.ID, c.Name, c.Industry, c.Size,
		c.ContactName, c.ContactEmail, c.ContactPhone,
		c.City, c.Status, c.CreatedAt.Format(dateLayout),
	}
}

func leadRow(l *leads.CompanyLead) []string {
	return []string{
		l.ID, l.CompanyName, l.ContactName, l.ContactEmail,
		l.ContactPhone, l.City, l.Status, l.CreatedAt.Format(dateLayout),
	}
}

// WriteCSV writes the companies directory followed by a blank line and the
// leads directory, each with its own header row.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer) error {
	companyList, err := s.companies.List(ctx)
	if err != nil {
		return fmt.Errorf("export: list companies: %w", err)
	}
	leadList, err := s.leads.List(ctx)
	if err != nil {
		return fmt.Errorf("export: list leads: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(companyHeaders); err != nil {
		return fmt.Errorf("export: write csv: %w", err)
	}
	for _, c := range companyList {
		if err := cw.Write(companyRow(c)); err != nil {
			return fmt.Errorf("export: write csv: %w", err)
		}
	}
	if err := cw.Write([]string{}); err != nil {
		return fmt.Errorf("export: write csv: %w", err)
	}
	if err := cw.Write(leadHeaders); err != nil {
		return fmt.Errorf("export: write csv: %w", err)
	}
	for _, l := range leadList {
		if err := cw.Write(leadRow(l)); err != nil {
			return fmt.Errorf("export: write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a workbook with a Companies sheet and a Leads sheet.
func (s *Service) WriteXLSX(ctx context.Context, w io.Writer) error {
	companyList, err := s.companies.List(ctx)
	if err != nil {
		return fmt.Errorf("export: list companies: %w", err)
	}
	leadList, err := s.leads.List(ctx)
	if err != nil {
		return fmt.Errorf("export: list leads: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}

	companyRows := make([][]string, 0, len(companyList))
	for _, c := range companyList {
		companyRows = append(companyRows, companyRow(c))
	}
	leadRows := make([][]string, 0, len(leadList))
	for _, l := range leadList {
		leadRows = append(leadRows, leadRow(l))
	}

	if err := writeSheet(f, "Companies", headerStyle, companyHeaders, companyRows); err != nil {
		return err
	}
	if err := writeSheet(f, "Leads", headerStyle, leadHeaders, leadRows); err != nil {
		return err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("export: delete default sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write xlsx: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, headerStyle int, headers []string, rows [][]string) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("export: new sheet %s: %w", name, err)
	}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(name, cell, h); err != nil {
			return fmt.Errorf("export: sheet %s: %w", name, err)
		}
	}
	last := fmt.Sprintf("%c1", 'A'+len(headers)-1)
	if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("export: sheet %s: %w", name, err)
	}
	for r, row := range rows {
		for c, v := range row {
			cell := fmt.Sprintf("%c%d", 'A'+c, r+2)
			if err := f.SetCellValue(name, cell, v); err != nil {
				return fmt.Errorf("export: sheet %s: %w", name, err)
			}
		}
	}
	return nil
}
