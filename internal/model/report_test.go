package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestReport_SetScrapedKeepsCountInSync(t *testing.T) {
	r := NewReport("n1")

	r.SetScraped([]string{"a", "b", "c"})
	if r.ScrapedContentCount != 3 {
		t.Errorf("Expected count 3, got %d", r.ScrapedContentCount)
	}

	r.SetScraped(nil)
	if r.ScrapedContentCount != 0 {
		t.Errorf("Expected count 0 after reset, got %d", r.ScrapedContentCount)
	}
}

func TestReport_ScrapedContentsExcludedFromJSON(t *testing.T) {
	r := NewReport("n1")
	r.SetScraped([]string{"secret page text"})

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	if strings.Contains(string(data), "secret page text") {
		t.Errorf("Scraped contents leaked into serialized report")
	}
	if !strings.Contains(string(data), `"scraped_content_count":1`) {
		t.Errorf("Expected count in JSON, got %s", data)
	}
}

func TestReport_AddError(t *testing.T) {
	r := NewReport("n1")
	r.AddError("first")
	r.AddError("second")

	if len(r.ProcessingErrors) != 2 || r.ProcessingErrors[1] != "second" {
		t.Errorf("Unexpected errors: %v", r.ProcessingErrors)
	}
}

func TestRecencyCategory_Recognized(t *testing.T) {
	if !RecencyEvergreen.Recognized() || !RecencyRealtime.Recognized() {
		t.Errorf("Known categories must be recognized")
	}
	if RecencyCategory("Seasonal").Recognized() || RecencyCategory("").Recognized() {
		t.Errorf("Unknown categories must not be recognized")
	}
}
