package validation

import "testing"

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"u@x.com", true},
		{"first.last@example.co", true},
		{"under_score@mail-host.org", true},
		{"", false},
		{"no-at-sign", false},
		{"double@@x.com", false},
		{"trailing.dot@x.", false},
		{"u@x.verylongtld", false},
		{"spaces in@x.com", false},
	}

	for _, tc := range tests {
		if got := ValidEmail(tc.email); got != tc.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}

func TestValidBirthday(t *testing.T) {
	tests := []struct {
		birthday string
		want     bool
	}{
		{"1975-01-02", true},
		{"2000-12-31", true},
		{"1975-13-02", false},
		{"1975-1-2", false},
		{"02-01-1975", false},
		{"", false},
		{"not-a-date", false},
	}

	for _, tc := range tests {
		if got := ValidBirthday(tc.birthday); got != tc.want {
			t.Errorf("ValidBirthday(%q) = %v, want %v", tc.birthday, got, tc.want)
		}
	}
}

func TestParseBirthday(t *testing.T) {
	got, err := ParseBirthday("1975-01-02")
	if err != nil {
		t.Fatalf("ParseBirthday error: %v", err)
	}
	// 1975-01-02T00:00:00Z
	if got != 157766400 {
		t.Fatalf("ParseBirthday = %d, want 157766400", got)
	}

	if _, err := ParseBirthday("garbage"); err == nil {
		t.Fatalf("expected error for malformed birthday")
	}
}
