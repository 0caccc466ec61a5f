package models

import "testing"

func TestDownloadingStatus(t *testing.T) {
	tests := []struct {
		percent int
		want    string
	}{
		{0, "downloading-0%"},
		{25, "downloading-25%"},
		{100, "downloading-100%"},
	}
	for _, tt := range tests {
		if got := DownloadingStatus(tt.percent); got != tt.want {
			t.Errorf("DownloadingStatus(%d) = %q, want %q", tt.percent, got, tt.want)
		}
	}
}
