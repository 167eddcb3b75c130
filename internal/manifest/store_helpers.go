package manifest

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run          Run
		startedRaw   string
		finishedRaw  string
		statusStr    string
		dryRun       int64
		vocabPath    sql.NullString
		classesJSON  sql.NullString
		errorKind    sql.NullString
		errorMessage sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&startedRaw,
		&finishedRaw,
		&statusStr,
		&dryRun,
		&run.DataFolder,
		&run.MinFreq,
		&run.MaxFreq,
		&run.VocabSize,
		&vocabPath,
		&classesJSON,
		&run.FilesWritten,
		&errorKind,
		&errorMessage,
	); err != nil {
		return nil, err
	}

	run.StartedAt = parseTime(startedRaw)
	run.FinishedAt = parseTime(finishedRaw)
	run.Status = Status(statusStr)
	run.DryRun = dryRun != 0
	run.VocabPath = vocabPath.String
	run.ErrorKind = errorKind.String
	run.ErrorMessage = errorMessage.String
	if classesJSON.Valid && classesJSON.String != "" {
		if err := json.Unmarshal([]byte(classesJSON.String), &run.Classes); err != nil {
			return nil, fmt.Errorf("decode classes: %w", err)
		}
	}
	return &run, nil
}

func encodeClasses(classes []int) (any, error) {
	if len(classes) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(classes)
	if err != nil {
		return nil, fmt.Errorf("marshal classes: %w", err)
	}
	return string(data), nil
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
