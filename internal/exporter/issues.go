package exporter

import (
	"io"
	"sort"
	"strconv"

	"ledgerlens/pkg/contracts/domain"
)

// issueHeaders is the contract consumed by the issue-report tooling.
var issueHeaders = []string{"original_index", "column", "severity", "message"}

// WriteIssues serializes every verification issue as one delimited record,
// ordered by original row index and, within a row, in the order the engine
// raised them.
func WriteIssues(w io.Writer, result *domain.Result) error {
	return WriteCSV(w, WriteOptions{
		Headers:   issueHeaders,
		Records:   issueRecords(result),
		BOMPrefix: true,
	})
}

// WriteIssuesFile writes the issue report to a file.
func WriteIssuesFile(path string, result *domain.Result) error {
	return WriteCSVFile(path, WriteOptions{
		Headers:   issueHeaders,
		Records:   issueRecords(result),
		BOMPrefix: true,
	})
}

func issueRecords(result *domain.Result) [][]string {
	indexes := make([]int, 0, len(result.ByIndex))
	for idx := range result.ByIndex {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	var records [][]string
	for _, idx := range indexes {
		for _, issue := range result.ByIndex[idx] {
			records = append(records, []string{
				strconv.Itoa(idx),
				issue.Column,
				string(issue.Severity),
				issue.Message,
			})
		}
	}
	return records
}
