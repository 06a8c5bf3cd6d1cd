package status

import "testing"

func TestUsage(t *testing.T) {
	u, err := Usage(t.TempDir())
	if err != nil {
		t.Skipf("disk usage unavailable: %v", err)
	}
	if u.Total == 0 {
		t.Errorf("Total = 0, want non-zero")
	}
	if u.Free > u.Total {
		t.Errorf("Free %d > Total %d", u.Free, u.Total)
	}
}

func TestReclaimed(t *testing.T) {
	tests := []struct {
		before, after uint64
		want          uint64
	}{
		{100, 150, 50},
		{100, 100, 0},
		{150, 100, 0},
	}
	for _, tt := range tests {
		got := Reclaimed(DiskUsage{Free: tt.before}, DiskUsage{Free: tt.after})
		if got != tt.want {
			t.Errorf("Reclaimed(%d, %d) = %d, want %d", tt.before, tt.after, got, tt.want)
		}
	}
}
