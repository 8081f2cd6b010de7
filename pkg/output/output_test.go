package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fincast/assumptions/pkg/document"
)

func TestWrite(t *testing.T) {
	doc := &document.Document{FiscalYearStart: "January", SelfFunding: 50000}

	var buf bytes.Buffer
	if err := Write(&buf, "json", doc); err != nil {
		t.Fatalf("Write(json) error = %v", err)
	}
	if !strings.Contains(buf.String(), `"fiscalYearStart": "January"`) {
		t.Errorf("JSON output missing fiscal year start: %s", buf.String())
	}

	buf.Reset()
	if err := Write(&buf, "yaml", doc); err != nil {
		t.Fatalf("Write(yaml) error = %v", err)
	}
	if !strings.Contains(buf.String(), "fiscalyearstart: January") {
		t.Errorf("YAML output missing fiscal year start: %s", buf.String())
	}

	if err := Write(&buf, "csv", doc); err == nil {
		t.Error("Write(csv) error = nil, want unsupported format error")
	}
}
