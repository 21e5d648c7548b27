package password

import (
	"strings"
	"testing"
)

func TestCheckStrongPassword(t *testing.T) {
	verdict := Check("Sup3r-secret!")
	if !verdict.Strong {
		t.Errorf("Check(%q).Strong = false, want true; violations = %v", "Sup3r-secret!", verdict.Violations)
	}
	if got := verdict.Message(); got != "" {
		t.Errorf("Message() = %q, want empty", got)
	}
}

func TestCheckViolations(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     []string
	}{
		{
			name:     "missing uppercase",
			password: "sup3r-secret!",
			want:     []string{msgUppercase},
		},
		{
			name:     "missing digit",
			password: "Super-secret!",
			want:     []string{msgDigit},
		},
		{
			name:     "missing symbol",
			password: "Sup3rsecret",
			want:     []string{msgSymbol},
		},
		{
			name:     "lowercase only",
			password: "supersecret",
			want:     []string{msgUppercase, msgDigit, msgSymbol},
		},
		{
			name:     "empty",
			password: "",
			want:     []string{msgUppercase, msgDigit, msgSymbol},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := Check(tt.password)
			if verdict.Strong {
				t.Fatalf("Check(%q).Strong = true, want false", tt.password)
			}
			if len(verdict.Violations) != len(tt.want) {
				t.Fatalf("violations = %v, want %v", verdict.Violations, tt.want)
			}
			for i := range tt.want {
				if verdict.Violations[i] != tt.want[i] {
					t.Errorf("violations[%d] = %q, want %q", i, verdict.Violations[i], tt.want[i])
				}
			}
		})
	}
}

func TestMessageJoinsViolationsInOrder(t *testing.T) {
	verdict := Check("supersecret")
	msg := verdict.Message()

	upperIdx := strings.Index(msg, msgUppercase)
	digitIdx := strings.Index(msg, msgDigit)
	symbolIdx := strings.Index(msg, msgSymbol)
	if upperIdx < 0 || digitIdx < 0 || symbolIdx < 0 {
		t.Fatalf("Message() = %q, missing a violation", msg)
	}
	if !(upperIdx < digitIdx && digitIdx < symbolIdx) {
		t.Errorf("Message() = %q, violations out of order", msg)
	}
}

func TestCheckTreatsNonAlphanumericAsSymbol(t *testing.T) {
	for _, p := range []string{"Sup3r secret", "Sup3r_secret", "Sup3rsecret?"} {
		if verdict := Check(p); !verdict.Strong {
			t.Errorf("Check(%q).Strong = false, want true; violations = %v", p, verdict.Violations)
		}
	}
}
