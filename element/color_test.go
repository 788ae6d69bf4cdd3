package element

import "testing"

func TestIsValidColor(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"#fff", true},
		{"#ffffff", true},
		{"#A0b1C2", true},
		{"rgb(1,2,3)", true},
		{"rgba(1,2,3,0.5)", true},
		{"rgb(999, -1, x", true}, // prefix check only
		{"red", true},
		{"cornflowerblue", true},
		{"transparent", true},
		{"none", true},
		{"not-a-color", false},
		{"#ff", false},
		{"#ffff", false},
		{"#gggggg", false},
		{"RGB(1,2,3)", false},
		{"Red", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidColor(tt.in); got != tt.want {
			t.Errorf("IsValidColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsNoPaint(t *testing.T) {
	for _, s := range []string{"", "none", "transparent"} {
		if !IsNoPaint(s) {
			t.Errorf("IsNoPaint(%q) = false", s)
		}
	}
	if IsNoPaint("#000") {
		t.Error("IsNoPaint(#000) = true")
	}
}
