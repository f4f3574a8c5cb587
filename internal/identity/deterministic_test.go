package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsDeterministic(t *testing.T) {
	first := UUID("go-docsite:doc:1.0.0:overview")
	second := UUID("go-docsite:doc:1.0.0:overview")
	if first != second {
		t.Fatalf("same key produced different UUIDs: %s vs %s", first, second)
	}
	if first == uuid.Nil {
		t.Fatal("expected non-nil UUID for non-empty key")
	}
}

func TestUUIDTrimsWhitespace(t *testing.T) {
	if UUID("  key  ") != UUID("key") {
		t.Fatal("expected surrounding whitespace to be ignored")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if UUID("") != uuid.Nil {
		t.Fatal("expected uuid.Nil for empty key")
	}
	if UUID("   ") != uuid.Nil {
		t.Fatal("expected uuid.Nil for blank key")
	}
}

func TestDocumentUUIDVariesByVersionAndID(t *testing.T) {
	base := DocumentUUID("1.0.0", "overview")
	if base == DocumentUUID("2.0.0", "overview") {
		t.Fatal("expected different versions to produce different UUIDs")
	}
	if base == DocumentUUID("1.0.0", "install") {
		t.Fatal("expected different ids to produce different UUIDs")
	}
	if base != DocumentUUID(" 1.0.0 ", " overview ") {
		t.Fatal("expected trimmed inputs to map to the same UUID")
	}
}
