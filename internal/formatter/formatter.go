// package formatter reads topic sheets (CSV, XLSX) and renders payloads and submission history
package formatter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/desertthunder/topix/internal/models"
	"github.com/desertthunder/topix/internal/shared"
	"github.com/xuri/excelize/v2"
)

var nameHeaders = map[string]bool{"topic name": true, "topicname": true, "name": true, "topic": true}

// ImportTopicsFile reads a topic sheet, choosing the parser by file extension (.csv or .xlsx).
func ImportTopicsFile(path string) (models.TopicList, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.TopicList{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ImportTopicsCSV(f)
	case ".xlsx":
		return ImportTopicsXLSX(f)
	default:
		return models.TopicList{}, fmt.Errorf("%w: %s", shared.ErrUnsupportedFile, filepath.Ext(path))
	}
}

// ImportTopicsCSV reads rows of name, description. A leading header row is skipped.
func ImportTopicsCSV(r io.Reader) (models.TopicList, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return models.TopicList{}, fmt.Errorf("%w: failed to read CSV: %v", shared.ErrInvalidInput, err)
	}
	return rowsToList(rows), nil
}

// ImportTopicsXLSX reads rows of name, description from the first sheet of a workbook.
func ImportTopicsXLSX(r io.Reader) (models.TopicList, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return models.TopicList{}, fmt.Errorf("%w: failed to open workbook: %v", shared.ErrInvalidInput, err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return models.TopicList{}, fmt.Errorf("%w: workbook has no sheets", shared.ErrInvalidInput)
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return models.TopicList{}, fmt.Errorf("%w: failed to read sheet %s: %v", shared.ErrInvalidInput, sheets[0], err)
	}
	return rowsToList(rows), nil
}

// rowsToList converts sheet rows to entries in row order. Blank rows between entries are kept so
// positions match the sheet; trailing blank rows are dropped.
func rowsToList(rows [][]string) models.TopicList {
	entries := make([]models.TopicEntry, 0, len(rows))
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}

		var entry models.TopicEntry
		if len(row) > 0 {
			entry.TopicName = strings.TrimSpace(row[0])
		}
		if len(row) > 1 {
			entry.Description = strings.TrimSpace(row[1])
		}
		entries = append(entries, entry)
	}

	for len(entries) > 0 && entries[len(entries)-1] == (models.TopicEntry{}) {
		entries = entries[:len(entries)-1]
	}
	return models.TopicListOf(entries...)
}

func isHeader(row []string) bool {
	if len(row) == 0 || !nameHeaders[shared.NormalizeKey(row[0])] {
		return false
	}
	return len(row) < 2 || shared.NormalizeKey(row[1]) == "description"
}

// ExportTopicsXLSX writes a list to a single-sheet workbook with a header row, the layout [ImportTopicsXLSX] reads.
func ExportTopicsXLSX(list models.TopicList, w io.Writer) error {
	book := excelize.NewFile()
	defer book.Close()

	sheet := book.GetSheetName(0)
	if err := book.SetSheetRow(sheet, "A1", &[]any{"Topic Name", "Description"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, entry := range list.Entries() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := book.SetSheetRow(sheet, cell, &[]any{entry.TopicName, entry.Description}); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := book.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ExportPayloadJSON renders records exactly as they are sent to the backend.
func ExportPayloadJSON(records []models.TopicRecord) ([]byte, error) {
	if records == nil {
		records = []models.TopicRecord{}
	}
	return shared.MarshalJSON(records, true)
}

// ExportPayloadMarkdown renders records as a numbered Markdown list.
func ExportPayloadMarkdown(records []models.TopicRecord, courseID int64) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Topics for course %d\n\n", courseID))
	buf.WriteString(fmt.Sprintf("**Topics**: %d\n\n", len(records)))

	for _, r := range records {
		desc := ""
		if r.Description != "" {
			desc = " - " + r.Description
		}
		buf.WriteString(fmt.Sprintf("%d. **%s**%s\n", r.TopicID+1, r.TopicName, desc))
	}
	return buf.Bytes()
}

// SubmissionView is the JSON shape of a journaled submission.
type SubmissionView struct {
	ID         string               `json:"id"`
	Sequence   int                  `json:"sequence"`
	CourseID   int64                `json:"courseID"`
	Status     string               `json:"status"`
	Error      string               `json:"error,omitempty"`
	CreatedAt  time.Time            `json:"createdAt"`
	TopicCount int                  `json:"topicCount"`
	Topics     []models.TopicRecord `json:"topics,omitempty"`
}

// ExportSubmissionsJSON renders submissions for machine consumption.
func ExportSubmissionsJSON(submissions []*models.Submission) ([]byte, error) {
	views := make([]SubmissionView, len(submissions))
	for i, s := range submissions {
		views[i] = SubmissionView{
			ID:         s.ID(),
			Sequence:   s.Sequence(),
			CourseID:   s.CourseID(),
			Status:     string(s.Status()),
			Error:      s.Error(),
			CreatedAt:  s.CreatedAt(),
			TopicCount: s.TopicCount(),
			Topics:     s.Topics(),
		}
	}
	return shared.MarshalJSON(views, true)
}

// ExportSubmissionsText renders submissions as an aligned table.
func ExportSubmissionsText(submissions []*models.Submission) ([]byte, error) {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "SEQ\tCOURSE\tTOPICS\tSTATUS\tCREATED\tERROR")
	for _, s := range submissions {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\t%s\n",
			s.Sequence(), s.CourseID(), s.TopicCount(), s.Status(),
			s.CreatedAt().Format(time.DateTime), s.Error())
	}

	if err := tw.Flush(); err != nil {
		return nil, errors.Join(shared.ErrInvalidInput, err)
	}
	return buf.Bytes(), nil
}
