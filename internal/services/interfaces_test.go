package services

import "testing"

func TestListOptionsDefaults(t *testing.T) {
	tests := []struct {
		name       string
		opts       ListOptions
		wantLimit  int
		wantOffset int
		wantPage   int
	}{
		{"zero value", ListOptions{}, 25, 0, 1},
		{"explicit first page", ListOptions{PageNumber: 1, PageSize: 10}, 10, 0, 1},
		{"later page", ListOptions{PageNumber: 3, PageSize: 10}, 10, 20, 3},
		{"negative page falls back", ListOptions{PageNumber: -1, PageSize: 10}, 10, 0, 1},
		{"page size only", ListOptions{PageSize: 50}, 50, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.Limit(); got != tt.wantLimit {
				t.Errorf("Limit() = %d, want %d", got, tt.wantLimit)
			}
			if got := tt.opts.Offset(); got != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", got, tt.wantOffset)
			}
			if got := tt.opts.Page(); got != tt.wantPage {
				t.Errorf("Page() = %d, want %d", got, tt.wantPage)
			}
		})
	}
}
