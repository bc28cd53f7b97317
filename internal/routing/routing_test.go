package routing

import "testing"

func TestRoute(t *testing.T) {
	r := New(DefaultConfig())

	tests := []struct {
		score int
		want  Path
	}{
		{0, Reject},
		{20, Reject},
		{69, Reject},
		{70, Accept},
		{90, Accept},
		{100, Accept},
	}

	for _, tt := range tests {
		if got := r.Route(tt.score); got != tt.want {
			t.Errorf("Route(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestNeedsHumanReview(t *testing.T) {
	r := New(DefaultConfig())

	tests := []struct {
		name  string
		score int
		gaps  int
		want  bool
	}{
		{"below band", 64, 0, false},
		{"band low edge", 65, 0, true},
		{"accept threshold inside band", 70, 0, true},
		{"band high edge", 75, 0, true},
		{"above band", 76, 5, false},
		{"strong with few gaps", 85, 2, false},
		{"strong with many gaps", 85, 3, true},
		{"perfect without gaps", 100, 0, false},
		{"low with many gaps", 20, 6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.NeedsHumanReview(tt.score, tt.gaps); got != tt.want {
				t.Errorf("NeedsHumanReview(%d, %d) = %v, want %v", tt.score, tt.gaps, got, tt.want)
			}
		})
	}
}

func TestCustomThresholds(t *testing.T) {
	r := New(Config{AcceptThreshold: 50, ReviewLow: 40, ReviewHigh: 45, HighScore: 90, MaxGaps: 0})

	if r.Route(50) != Accept || r.Route(49) != Reject {
		t.Fatalf("custom accept threshold not honored")
	}
	if !r.NeedsHumanReview(90, 1) {
		t.Fatalf("expected review for high score with gaps")
	}
}
