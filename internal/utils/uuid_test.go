package utils

import "testing"

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()

	first, second := g.Generate(), g.Generate()
	if first == second {
		t.Fatal("expected distinct identifiers")
	}
	if !IsUUID(first) || !IsUUID(second) {
		t.Fatalf("expected valid UUIDs, got %q and %q", first, second)
	}
}

func TestIsUUID(t *testing.T) {
	if IsUUID("not-a-uuid") {
		t.Error("expected false for malformed input")
	}
	if IsUUID("") {
		t.Error("expected false for empty input")
	}
	if !IsUUID("0190a3f6-7c1e-7a51-9c39-6c1f0e0b2c11") {
		t.Error("expected true for a valid UUID")
	}
}
