package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/surveyhub/survey-service/internal/repositories"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// ExportSurveyResults renders every result of an active survey into an xlsx
// workbook and returns the file contents with a suggested filename. Only the
// survey owner may export.
func (s *exportService) ExportSurveyResults(ctx context.Context, surveyID, accountID uint) ([]byte, string, error) {
	survey, err := s.repo.Survey().GetActiveByID(ctx, nil, surveyID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, "", NewNotFoundError("survey", surveyID)
		}
		return nil, "", err
	}

	if survey.AccountID != accountID {
		return nil, "", NewPermissionError(accountID, "export results for this survey")
	}

	results, _, err := s.repo.Result().List(ctx, nil, repositories.ResultFilters{
		SurveyID: &surveyID,
		SortBy:   "created_at",
	})
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Result ID", "Account ID", "Started At", "Ended At", "Duration (s)", "Total Points", "Correct", "Incorrect"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, result := range results {
		endedAt := ""
		if result.EndedAt != nil {
			endedAt = result.EndedAt.Format(time.RFC3339)
		}

		values := []interface{}{
			result.ID,
			result.AccountID,
			result.StartedAt.Format(time.RFC3339),
			endedAt,
			result.Duration,
			result.TotalPoints,
			result.CorrectCount,
			result.IncorrectCount,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to serialize workbook: %w", err)
	}

	filename := fmt.Sprintf("survey-%d-results-%s.xlsx", survey.ID, time.Now().Format("20060102"))

	s.logger.InfoContext(ctx, "Survey results exported",
		"survey_id", surveyID,
		"rows", len(results))

	return buf.Bytes(), filename, nil
}
