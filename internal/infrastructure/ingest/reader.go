package ingest

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/1933211129/news-summary/internal/domain"
	"github.com/1933211129/news-summary/internal/ports"
)

// Logical input fields and their default header aliases. The originals are
// the Chinese column names the upstream spreadsheets actually use.
var defaultColumnAliases = map[string][]string{
	"raw_content":        {"原文内容", "内容", "新闻内容", "正文"},
	"release_time":       {"资源发布时间", "发布时间", "时间"},
	"source_institution": {"资源来源机构", "来源", "机构"},
	"url":                {"资源URL", "资源url", "链接", "url"},
}

// InputFormatError reports an unsupported file format or missing logical
// columns. It is fatal for the run; no partial processing happens.
type InputFormatError struct {
	Format  string
	Missing []string
}

func (e *InputFormatError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("input is missing required columns: %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("unsupported input format %q", e.Format)
}

// Reader loads tabular news files and maps their columns onto the four
// logical input fields through an alias table.
type Reader struct {
	aliases map[string][]string
	logger  *slog.Logger
}

var _ ports.RecordSource = (*Reader)(nil)

// NewReader builds a reader; a nil alias table selects the defaults.
func NewReader(aliases map[string][]string, logger *slog.Logger) *Reader {
	if len(aliases) == 0 {
		aliases = defaultColumnAliases
	}
	return &Reader{aliases: aliases, logger: logger}
}

// Read loads the file at path and returns standardized inputs. Supported
// suffixes are .xlsx and .csv; anything else is an InputFormatError.
func (r *Reader) Read(path string) ([]domain.ArticleInput, error) {
	var (
		rows [][]string
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		rows, err = readXLSX(path)
	case ".csv":
		rows, err = readCSV(path)
	default:
		return nil, &InputFormatError{Format: ext}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if len(rows) == 0 {
		return nil, &InputFormatError{Missing: requiredFields(r.aliases)}
	}

	mapping, missing := buildColumnMapping(rows[0], r.aliases)
	if len(missing) > 0 {
		return nil, &InputFormatError{Missing: missing}
	}

	inputs := make([]domain.ArticleInput, 0, len(rows)-1)
	for _, row := range rows[1:] {
		input := domain.ArticleInput{
			RawContent:        StripMarkup(cell(row, mapping["raw_content"])),
			ReleaseTime:       optional(cell(row, mapping["release_time"])),
			SourceInstitution: optional(cell(row, mapping["source_institution"])),
			URL:               optional(cell(row, mapping["url"])),
		}
		inputs = append(inputs, input)
	}

	if r.logger != nil {
		r.logger.Debug("input loaded", "path", path, "rows", len(inputs))
	}
	return inputs, nil
}

func readXLSX(path string) ([][]string, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rows, nil
}

// normalizeHeader folds header spelling differences: fullwidth colons,
// surrounding whitespace, letter case.
func normalizeHeader(name string) string {
	name = strings.ReplaceAll(name, "：", ":")
	return strings.ToLower(strings.TrimSpace(name))
}

func buildColumnMapping(header []string, aliases map[string][]string) (map[string]int, []string) {
	normalized := make(map[string]int, len(header))
	for i, column := range header {
		normalized[normalizeHeader(column)] = i
	}

	mapping := make(map[string]int, len(aliases))
	var missing []string
	for _, field := range requiredFields(aliases) {
		index := -1
		for _, alias := range aliases[field] {
			if i, ok := normalized[normalizeHeader(alias)]; ok {
				index = i
				break
			}
		}
		if index < 0 {
			missing = append(missing, field)
			continue
		}
		mapping[field] = index
	}

	return mapping, missing
}

// requiredFields returns the logical field names in a stable order so
// error messages stay deterministic.
func requiredFields(aliases map[string][]string) []string {
	order := []string{"raw_content", "release_time", "source_institution", "url"}
	fields := make([]string, 0, len(aliases))
	for _, field := range order {
		if _, ok := aliases[field]; ok {
			fields = append(fields, field)
		}
	}
	return fields
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
