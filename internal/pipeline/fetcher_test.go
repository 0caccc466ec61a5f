package pipeline

import (
	"strings"
	"testing"
)

func TestProgressTemplateFields(t *testing.T) {
	if !strings.HasPrefix(progressTemplate, progressPrefix) {
		t.Fatalf("template %q must carry the %q line prefix", progressTemplate, progressPrefix)
	}
	fields := strings.Split(strings.TrimPrefix(progressTemplate, progressPrefix), "|")
	if len(fields) != 5 {
		t.Fatalf("template has %d fields, parseProgressLine expects 5", len(fields))
	}

	// status, filename and byte counts only exist in the progress hook dict;
	// an info-dict filename renders as NA and breaks job id recovery.
	for _, i := range []int{0, 1, 2, 3} {
		if !strings.HasPrefix(fields[i], "%(progress.") {
			t.Errorf("field %d = %q, want a progress hook field", i, fields[i])
		}
	}
	if fields[1] != "%(progress.filename)s" {
		t.Errorf("filename field = %q, want %%(progress.filename)s", fields[1])
	}
	if fields[4] != "%(info.title)s" {
		t.Errorf("title field = %q, want %%(info.title)s", fields[4])
	}
}
