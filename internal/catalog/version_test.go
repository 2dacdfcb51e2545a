package catalog

import "testing"

func TestSameMajor(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"v1.0.0", "v1.4.2", true},
		{"1.0.0", "v1.9.0", true},
		{"v1.0.0", "v2.0.0", false},
		{"", "v1.0.0", false},
		{"garbage", "v1.0.0", false},
	}
	for _, tt := range tests {
		if got := SameMajor(tt.a, tt.b); got != tt.want {
			t.Errorf("SameMajor(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNewer(t *testing.T) {
	if !Newer("v1.2.0", "v1.1.9") {
		t.Error("v1.2.0 should be newer than v1.1.9")
	}
	if Newer("1.0.0", "v1.0.0") {
		t.Error("equal versions are not newer")
	}
}
