package service

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"salary-admin/internal/models"
)

const attendanceSheet = "Attendance"

// ReportService строит выгрузки для администраторов
type ReportService struct {
	employeeRepo employeeLister
}

type employeeLister interface {
	GetAll(ctx context.Context) ([]*models.Employee, error)
}

func NewReportService(employeeRepo employeeLister) *ReportService {
	return &ReportService{employeeRepo: employeeRepo}
}

// WriteAttendanceReport пишет xlsx с сохраненными показателями посещаемости
func (s *ReportService) WriteAttendanceReport(ctx context.Context, w io.Writer) error {
	employees, err := s.employeeRepo.GetAll(ctx)
	if err != nil {
		return storageError("list employees", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", attendanceSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := []interface{}{"Employee ID", "First Name", "Last Name", "Role", "Employment Start", "Days Worked This Month", "Total Days Worked"}
	if err := writeRow(f, attendanceSheet, 1, headers); err != nil {
		return err
	}

	for i, employee := range employees {
		row := i + 2
		start := ""
		if employee.EmploymentStartDate != nil {
			start = employee.EmploymentStartDate.Format("2006-01-02")
		}

		values := []interface{}{
			employee.ID,
			employee.FirstName,
			employee.LastName,
			string(employee.Role),
			start,
			employee.DaysWorkedThisMonth,
			employee.TotalDaysWorked,
		}
		if err := writeRow(f, attendanceSheet, row, values); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write attendance report: %w", err)
	}
	return nil
}

// writeRow заполняет строку листа начиная с колонки A
func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name for row %d: %w", row, err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
