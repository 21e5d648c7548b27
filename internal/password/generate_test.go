package password

import (
	"strings"
	"testing"
)

func TestGenerateTemporaryLength(t *testing.T) {
	got, err := GenerateTemporary()
	if err != nil {
		t.Fatalf("GenerateTemporary: %v", err)
	}
	if len(got) != tempPasswordLength {
		t.Errorf("len = %d, want %d", len(got), tempPasswordLength)
	}
}

func TestGenerateTemporaryPassesPolicy(t *testing.T) {
	// The generator guarantees one character from each class, so every
	// temporary password must satisfy the strength policy.
	for i := 0; i < 50; i++ {
		got, err := GenerateTemporary()
		if err != nil {
			t.Fatalf("GenerateTemporary: %v", err)
		}
		if verdict := Check(got); !verdict.Strong {
			t.Fatalf("generated password %q fails policy: %v", got, verdict.Violations)
		}
	}
}

func TestGenerateTemporaryUsesAllowedAlphabet(t *testing.T) {
	alphabet := genLower + genUpper + genDigits + genSymbols
	for i := 0; i < 20; i++ {
		got, err := GenerateTemporary()
		if err != nil {
			t.Fatalf("GenerateTemporary: %v", err)
		}
		for _, c := range got {
			if !strings.ContainsRune(alphabet, c) {
				t.Fatalf("password %q contains %q, not in alphabet", got, c)
			}
		}
	}
}

func TestGenerateTemporaryIsNotConstant(t *testing.T) {
	a, err := GenerateTemporary()
	if err != nil {
		t.Fatalf("GenerateTemporary: %v", err)
	}
	b, err := GenerateTemporary()
	if err != nil {
		t.Fatalf("GenerateTemporary: %v", err)
	}
	if a == b {
		t.Errorf("two generated passwords are identical: %q", a)
	}
}
