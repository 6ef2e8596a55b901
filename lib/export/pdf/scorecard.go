package pdfexport

import (
	"bytes"
	"fmt"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

type ScorecardData struct {
	JobTitle       string
	CandidateID    string
	StageName      string
	AppliedAt      time.Time
	Details        dbmodels.ScoreDetails
	OverallScore   *float64
	Recommendation models.Recommendation
}

// GenerateScorecard - сводка оценок кандидата. Используется встроенный шрифт Helvetica (cp1252).
func GenerateScorecard(data ScorecardData) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateScorecard panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Scorecard", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Candidate scorecard", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 12)
	stage := data.StageName
	if stage == "" {
		stage = "-"
	}
	summary := [][2]string{
		{"Job", data.JobTitle},
		{"Candidate", data.CandidateID},
		{"Stage", stage},
		{"Applied", formatDate(data.AppliedAt)},
		{"Overall score", formatScore(data.OverallScore)},
		{"Recommendation", formatRecommendation(data.Recommendation)},
	}
	for _, line := range summary {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(45, 8, line[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 8, tr(line[1]), "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	criteria := data.Details.Criteria()
	if len(criteria) == 0 {
		pdf.SetFont("Helvetica", "I", 12)
		pdf.CellFormat(0, 8, "No ratings yet", "", 1, "L", false, 0, "")
	} else {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetFillColor(229, 231, 235)
		pdf.CellFormat(120, 8, "Criterion", "1", 0, "L", true, 0, "")
		pdf.CellFormat(40, 8, "Rating", "1", 1, "C", true, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		for _, criterion := range criteria {
			pdf.CellFormat(120, 8, tr(criterion), "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 8, fmt.Sprintf("%v / %v", data.Details.Ratings[criterion], models.MaxRating), "1", 1, "C", false, 0, "")
		}
	}
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Format("02.01.2006")
}

func formatScore(value *float64) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *value)
}

func formatRecommendation(value models.Recommendation) string {
	if value == "" {
		return "-"
	}
	return string(value)
}
