package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"hrms/internal/domain"
	"hrms/internal/domain/models"
	"hrms/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// RosterPDF renders the employee roster, optionally filtered by gender.
func (s *EmployeeService) RosterPDF(ctx context.Context, gender string) ([]byte, string, error) {
	var all []models.Employee
	window := &domain.Pagination{Limit: domain.DefaultQueryLimit}
	for {
		page, err := s.Employees.FindByCondition(ctx, models.EmployeeCondition{Gender: gender}, window)
		if err != nil {
			return nil, "", domain.HandleServiceError(err, "Failed to build employee roster")
		}
		all = append(all, page...)
		if len(page) < window.Limit {
			break
		}
		window.Offset += window.Limit
	}

	utils.LogEvent(s.Log, utils.RequestIDFrom(ctx), "employees", "roster_pdf", fmt.Sprintf("rows=%d gender=%s", len(all), safe(gender, "all")))

	body, err := buildRosterPDF(all, gender)
	if err != nil {
		return nil, "", domain.NewInternal("Failed to render employee roster", err)
	}
	filename := "EMPLOYEE_ROSTER.pdf"
	if gender != "" {
		filename = "EMPLOYEE_ROSTER_" + strings.ToUpper(gender) + ".pdf"
	}
	return body, filename, nil
}

func buildRosterPDF(rows []models.Employee, gender string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Employee Roster", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "EMPLOYEE ROSTER")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Gender: %s    Total: %d    Generated: %s",
		safe(gender, "all"), len(rows), utils.FormatISO(utils.NowUTC())))
	pdf.Ln(10)

	headers := []string{"Emp No", "First Name", "Last Name", "Gender", "Birth Date", "Hire Date"}
	widths := []float64{30, 55, 60, 25, 40, 40}

	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, e := range rows {
		cells := []string{
			fmt.Sprintf("%d", e.EmpNo),
			e.FirstName,
			e.LastName,
			e.Gender,
			utils.FormatDate(e.BirthDate),
			utils.FormatDate(e.HireDate),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
