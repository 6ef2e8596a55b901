package xlsexport

import (
	"bytes"
	applicationapimodels "hr-pipeline-backend/models/api/application"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportBoard(jobTitle string, board applicationapimodels.BoardView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const SheetName = "Кандидаты"

var boardHeaders = []string{"Кандидат", "Этап", "Этап не найден", "Дата отклика", "Итоговая оценка", "Рекомендация"}

// ExportBoard - одна строка на отклик в порядке колонок доски, затем кандидаты вакансии без этапов
func (i impl) ExportBoard(jobTitle string, board applicationapimodels.BoardView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	if err := f.SetDocProps(&excelize.DocProperties{Title: jobTitle}); err != nil {
		return nil, errors.Wrap(err, "ошибка заполнения свойств xlsx")
	}
	row, err := writeHeader(f, sheet, 0, boardHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	row, err = writeBoardData(f, sheet, board, row)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
	}
	if err = f.SetSheetName(sheet, SheetName); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа xlsx")
	}
	log.WithField("rows", row-1).Debug("сформирована выгрузка доски вакансии")
	return f.WriteToBuffer()
}

func writeBoardData(f *excelize.File, sheet string, board applicationapimodels.BoardView, row int) (int, error) {
	total := len(board.Unassigned)
	for _, column := range board.Columns {
		total += len(column.Applications)
	}
	if total == 0 {
		return row, nil
	}
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(boardHeaders), row+total); err != nil {
		return row, err
	}
	for _, column := range board.Columns {
		for _, card := range column.Applications {
			row++
			if err := writeApplicationRow(f, sheet, row, card.ApplicationView, column.Stage.Name, card.Orphaned); err != nil {
				return row, err
			}
			if card.Orphaned {
				if err := markRow(f, sheet, row, len(boardHeaders)); err != nil {
					return row, err
				}
			}
		}
	}
	for _, item := range board.Unassigned {
		row++
		if err := writeApplicationRow(f, sheet, row, item, "", true); err != nil {
			return row, err
		}
	}
	return row, nil
}

func writeApplicationRow(f *excelize.File, sheet string, row int, item applicationapimodels.ApplicationView, stageName string, orphaned bool) error {
	values := []interface{}{
		item.CandidateID,
		stageName,
		yesNo(orphaned),
		"",
		"",
		string(item.Recommendation),
	}
	if !item.AppliedAt.IsZero() {
		values[3] = item.AppliedAt.Format("02.01.2006")
	}
	if item.OverallScore != nil {
		values[4] = *item.OverallScore
	}
	for idx, value := range values {
		if value == "" {
			continue
		}
		if err := writeColumn(f, sheet, idx+1, row, value); err != nil {
			return err
		}
	}
	return nil
}

func yesNo(value bool) string {
	if value {
		return "Да"
	}
	return "Нет"
}
