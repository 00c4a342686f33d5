package model

import "testing"

func TestValidAction(t *testing.T) {
	for _, s := range []string{ActionOpen, ActionClose, ActionAccessDenied} {
		if !ValidAction(s) {
			t.Fatalf("ValidAction(%q) = false", s)
		}
	}
	for _, s := range []string{"", "OPEN", "opened", "denied", "unlock"} {
		if ValidAction(s) {
			t.Fatalf("ValidAction(%q) = true", s)
		}
	}
}
