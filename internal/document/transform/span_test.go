package transform

import "testing"

func TestSpanAfterInsert(t *testing.T) {
	tests := []struct {
		name   string
		span   Span
		pos    int
		length int
		want   Span
	}{
		{"fully before", Span{2, 5}, 6, 3, Span{2, 5}},
		{"at exclusive end", Span{2, 5}, 5, 3, Span{2, 5}},
		{"contains position", Span{2, 5}, 3, 2, Span{2, 7}},
		{"just inside start", Span{2, 5}, 3, 1, Span{2, 6}},
		{"at start", Span{2, 5}, 2, 3, Span{5, 8}},
		{"fully after", Span{2, 5}, 0, 3, Span{5, 8}},
		{"zero width before position", Span{4, 4}, 5, 2, Span{4, 4}},
		{"zero width at position", Span{4, 4}, 4, 2, Span{6, 6}},
		{"zero width after position", Span{4, 4}, 1, 2, Span{6, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpanAfterInsert(tt.span, tt.pos, tt.length); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSpanAfterDelete(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		from, to int
		want     Span
		consumed bool
	}{
		{"fully before", Span{1, 3}, 3, 6, Span{1, 3}, false},
		{"fully after", Span{6, 8}, 2, 4, Span{4, 6}, false},
		{"starts at deletion end", Span{4, 6}, 2, 4, Span{2, 4}, false},
		{"ends inside", Span{1, 5}, 3, 6, Span{1, 3}, false},
		{"ends at deletion end", Span{1, 6}, 3, 6, Span{1, 3}, false},
		{"starts inside", Span{4, 8}, 3, 6, Span{3, 5}, false},
		{"starts at deletion start", Span{3, 8}, 3, 6, Span{3, 5}, false},
		{"fully contained", Span{4, 6}, 2, 6, Span{2, 2}, true},
		{"exactly the deleted range", Span{2, 6}, 2, 6, Span{2, 2}, true},
		{"spans the deletion", Span{1, 8}, 3, 6, Span{1, 5}, false},
		{"zero width inside", Span{4, 4}, 2, 6, Span{2, 2}, false},
		{"zero width at deletion start", Span{2, 2}, 2, 6, Span{2, 2}, false},
		{"zero width at deletion end", Span{6, 6}, 2, 6, Span{2, 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, consumed := SpanAfterDelete(tt.span, tt.from, tt.to)
			if got != tt.want || consumed != tt.consumed {
				t.Errorf("expected %v consumed=%v, got %v consumed=%v", tt.want, tt.consumed, got, consumed)
			}
		})
	}
}

func TestStartAfterInsert(t *testing.T) {
	if got := StartAfterInsert(4, 4, 3); got != 7 {
		t.Errorf("start at insertion point must shift, got %d", got)
	}
	if got := StartAfterInsert(4, 5, 3); got != 4 {
		t.Errorf("start before insertion point must stay, got %d", got)
	}
	if got := StartAfterInsert(6, 4, 3); got != 9 {
		t.Errorf("start after insertion point must shift, got %d", got)
	}
}

func TestEndAfterInsert(t *testing.T) {
	if got := EndAfterInsert(4, 4, 3); got != 4 {
		t.Errorf("end at insertion point must stay, got %d", got)
	}
	if got := EndAfterInsert(6, 4, 3); got != 9 {
		t.Errorf("end after insertion point must shift, got %d", got)
	}
	if got := EndAfterInsert(3, 4, 3); got != 3 {
		t.Errorf("end before insertion point must stay, got %d", got)
	}
}

func TestCoordAfterDelete(t *testing.T) {
	tests := []struct {
		name     string
		off      int
		from, to int
		want     int
	}{
		{"before", 1, 3, 6, 1},
		{"at deletion start", 3, 3, 6, 3},
		{"inside", 4, 3, 6, 3},
		{"at deletion end", 6, 3, 6, 3},
		{"after", 8, 3, 6, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoordAfterDelete(tt.off, tt.from, tt.to); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
