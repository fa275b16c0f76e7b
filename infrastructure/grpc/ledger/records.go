package ledger

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const maxRecordSize = 16 * 1024 * 1024

// LoadRecords reads one JSON wire record per line. Blank lines and lines
// starting with '#' are skipped. Records are only parsed here, not validated.
func LoadRecords(r io.Reader) ([]*structpb.Struct, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)

	var records []*structpb.Struct
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		record := &structpb.Struct{}
		if err := protojson.Unmarshal([]byte(text), record); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
