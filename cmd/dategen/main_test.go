package main

import "testing"

func TestNewFeed(t *testing.T) {
	tests := []struct {
		arabic bool
		title  string
	}{
		{false, "Islamic events 1446 AH"},
		{true, "المناسبات الإسلامية 1446 هـ"},
	}

	for _, tt := range tests {
		feed := newFeed(1446, tt.arabic)
		if feed.Title != tt.title {
			t.Errorf("newFeed(1446, %v).Title = %q, want %q", tt.arabic, feed.Title, tt.title)
		}
		if feed.Arabic != tt.arabic {
			t.Errorf("newFeed(1446, %v).Arabic = %v", tt.arabic, feed.Arabic)
		}
		if feed.Year != 1446 || feed.Description == "" {
			t.Errorf("newFeed(1446, %v) = %+v", tt.arabic, feed)
		}
	}
}
