package constants

import "testing"

func TestBuildIDErrorResponse(t *testing.T) {
	resp := BuildIDErrorResponse(12, MsgInstrumentNotFound)

	if resp[ResponseFieldID] != 12 {
		t.Errorf("Expected _id 12, got %v", resp[ResponseFieldID])
	}
	if resp[ResponseFieldError] != MsgInstrumentNotFound {
		t.Errorf("Expected error %q, got %v", MsgInstrumentNotFound, resp[ResponseFieldError])
	}
}

func TestBuildCreatedResponse(t *testing.T) {
	resp := BuildCreatedResponse(3, "Cello", MsgCreated)

	if len(resp) != 3 {
		t.Fatalf("Expected 3 fields, got %d", len(resp))
	}
	if resp[ResponseFieldName] != "Cello" {
		t.Errorf("Expected name Cello, got %v", resp[ResponseFieldName])
	}
}

func TestJoinMethods(t *testing.T) {
	if got := JoinMethods(CollectionMethods); got != "GET, HEAD, POST, OPTIONS" {
		t.Errorf("Unexpected collection methods %q", got)
	}
	if got := JoinMethods(ItemMethods); got != "GET, HEAD, PUT, DELETE, OPTIONS" {
		t.Errorf("Unexpected item methods %q", got)
	}
}
