package httputil

import (
	"encoding/json"
	"testing"
)

func TestOptionalStringUnmarshal(t *testing.T) {
	type payload struct {
		Folder OptionalString `json:"folder_id"`
	}

	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantNil     bool
		wantValue   string
	}{
		{name: "absent", body: `{}`, wantPresent: false},
		{name: "null", body: `{"folder_id": null}`, wantPresent: true, wantNil: true},
		{name: "value", body: `{"folder_id": "f-123"}`, wantPresent: true, wantValue: "f-123"},
		{name: "empty string", body: `{"folder_id": ""}`, wantPresent: true, wantValue: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if p.Folder.Present != tt.wantPresent {
				t.Fatalf("present: got %v, want %v", p.Folder.Present, tt.wantPresent)
			}
			if !tt.wantPresent {
				return
			}
			if tt.wantNil {
				if p.Folder.Value != nil {
					t.Fatalf("want nil value, got %q", *p.Folder.Value)
				}
				return
			}
			if p.Folder.Value == nil || *p.Folder.Value != tt.wantValue {
				t.Fatalf("value: got %v, want %q", p.Folder.Value, tt.wantValue)
			}
		})
	}
}

func TestOptionalStringRejectsNonString(t *testing.T) {
	var o OptionalString
	if err := json.Unmarshal([]byte(`42`), &o); err == nil {
		t.Fatal("expected error for non-string value")
	}
}
