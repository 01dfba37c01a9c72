package importer

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/logger"
	"github.com/mroshb/filmorate/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// Column layout of an import sheet. The first row is a header.
const (
	colName = iota
	colDescription
	colReleaseDate
	colDuration
	colMpa
	colGenres
)

// FilmCreator runs one parsed film through the normal create path.
type FilmCreator interface {
	Create(ctx context.Context, film *models.Film) (*models.Film, error)
}

// Row is one data row of the sheet. Number is the spreadsheet row number.
type Row struct {
	Number int
	Film   *models.Film
	Err    error
}

// RowError reports a row that was skipped.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

type Summary struct {
	Sheet    string
	Total    int
	Imported int
	Failed   []RowError
}

// ParseFilms reads the first sheet of an xlsx workbook.
func ParseFilms(r io.Reader) (string, []Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return sheet, nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	parsed := make([]Row, 0, len(rows))
	for i, cells := range rows {
		if i == 0 || isEmptyRow(cells) {
			continue
		}
		film, err := parseRow(cells)
		parsed = append(parsed, Row{Number: i + 1, Film: film, Err: err})
	}
	return sheet, parsed, nil
}

// Import creates every parsed film. Bad rows are reported in the summary and
// do not stop the run.
func Import(ctx context.Context, r io.Reader, creator FilmCreator) (*Summary, error) {
	sheet, rows, err := ParseFilms(r)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Sheet: sheet, Total: len(rows)}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if row.Err == nil {
			_, row.Err = creator.Create(ctx, row.Film)
		}
		if row.Err != nil {
			logger.Warn("Skipping film row", "sheet", sheet, "row", row.Number, "error", row.Err)
			summary.Failed = append(summary.Failed, RowError{Row: row.Number, Err: row.Err})
			continue
		}
		summary.Imported++
	}

	logger.Info("Film import finished", "sheet", sheet, "total", summary.Total, "imported", summary.Imported, "failed", len(summary.Failed))
	return summary, nil
}

func parseRow(cells []string) (*models.Film, error) {
	film := &models.Film{
		Name:        cell(cells, colName),
		Description: cell(cells, colDescription),
	}

	date, err := models.ParseDate(cell(cells, colReleaseDate))
	if err != nil {
		return nil, fmt.Errorf("release date must be YYYY-MM-DD: %q", cell(cells, colReleaseDate))
	}
	film.ReleaseDate = date

	duration, err := strconv.Atoi(cell(cells, colDuration))
	if err != nil {
		return nil, fmt.Errorf("duration must be a whole number of minutes: %q", cell(cells, colDuration))
	}
	film.Duration = duration

	if raw := cell(cells, colMpa); raw != "" {
		id, err := utils.ParseID(raw)
		if err != nil {
			return nil, fmt.Errorf("mpa: %w", err)
		}
		film.Mpa = &models.Mpa{ID: id}
	}

	genreIDs, err := utils.ParseIDList(cell(cells, colGenres))
	if err != nil {
		return nil, fmt.Errorf("genres: %w", err)
	}
	film.Genres = make([]models.Genre, len(genreIDs))
	for i, id := range genreIDs {
		film.Genres[i] = models.Genre{ID: id}
	}
	return film, nil
}

func cell(cells []string, i int) string {
	if i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if !utils.IsBlank(c) {
			return false
		}
	}
	return true
}
