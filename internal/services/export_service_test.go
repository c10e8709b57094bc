package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/surveyhub/survey-service/internal/models"
)

func TestExportSurveyResults(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepository()
	svc := NewExportService(repo, testLogger())

	survey := &models.Survey{Title: "Go basics", AccountID: 1, IsActive: true}
	if err := repo.Survey().Create(ctx, nil, survey); err != nil {
		t.Fatalf("create survey: %v", err)
	}

	ended := time.Now()
	result := &models.Result{
		SurveyID:     survey.ID,
		AccountID:    7,
		StartedAt:    ended.Add(-5 * time.Minute),
		EndedAt:      &ended,
		Duration:     300,
		TotalPoints:  8,
		CorrectCount: 2,
	}
	if err := repo.Result().Create(ctx, nil, result); err != nil {
		t.Fatalf("create result: %v", err)
	}

	content, filename, err := svc.ExportSurveyResults(ctx, survey.ID, 1)
	if err != nil {
		t.Fatalf("ExportSurveyResults: %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("filename = %q, want .xlsx suffix", filename)
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer workbook.Close()

	rows, err := workbook.GetRows("Results")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header plus one result", len(rows))
	}
	if rows[0][0] != "Result ID" {
		t.Errorf("header = %q", rows[0][0])
	}
	if rows[1][5] != "8" {
		t.Errorf("total points cell = %q, want 8", rows[1][5])
	}
}

func TestExportSurveyResultsUnknownSurvey(t *testing.T) {
	repo := newFakeRepository()
	svc := NewExportService(repo, testLogger())

	var notFound *NotFoundError
	if _, _, err := svc.ExportSurveyResults(context.Background(), 42, 1); !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestExportSurveyResultsOwnerOnly(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepository()
	svc := NewExportService(repo, testLogger())

	survey := &models.Survey{Title: "Go basics", AccountID: 1, IsActive: true}
	if err := repo.Survey().Create(ctx, nil, survey); err != nil {
		t.Fatalf("create survey: %v", err)
	}

	var permission *PermissionError
	if _, _, err := svc.ExportSurveyResults(ctx, survey.ID, 2); !errors.As(err, &permission) {
		t.Errorf("expected PermissionError, got %v", err)
	}
}
