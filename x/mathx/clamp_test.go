package mathx

import "testing"

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Fatalf("Clamp(5,0,10) = %d", got)
	}
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Fatalf("Clamp(-3,0,10) = %d", got)
	}
	if got := Clamp(42, 0, 10); got != 10 {
		t.Fatalf("Clamp(42,0,10) = %d", got)
	}
	// Swapped bounds still clamp correctly.
	if got := Clamp(42, 10, 0); got != 10 {
		t.Fatalf("Clamp(42,10,0) = %d", got)
	}
	if got := Clamp(2.5, 0.0, 1.0); got != 1.0 {
		t.Fatalf("Clamp(2.5,0,1) = %v", got)
	}
}

func TestBetween(t *testing.T) {
	if !Between(5, 0, 10) || !Between(0, 0, 10) || !Between(10, 0, 10) {
		t.Fatal("Between should be inclusive")
	}
	if Between(11, 0, 10) {
		t.Fatal("Between(11,0,10) = true")
	}
	if !Between(5, 10, 0) {
		t.Fatal("Between should accept swapped bounds")
	}
}
