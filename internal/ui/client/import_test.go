package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidateImportFile(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{
			name:    "valid single item",
			payload: `{"items":[{"card_name":"Emberwing Drake","set_code":"DW1","quantity":2}]}`,
			wantErr: false,
		},
		{
			name:    "valid item with all fields",
			payload: `{"items":[{"card_name":"Tidecaller Adept","set_code":"DW2","quantity":1,"condition":"near_mint","is_foil":true,"purchase_price":12.5}]}`,
			wantErr: false,
		},
		{
			name:    "not JSON",
			payload: `card_name,set_code,quantity`,
			wantErr: true,
		},
		{
			name:    "empty items array",
			payload: `{"items":[]}`,
			wantErr: true,
		},
		{
			name:    "missing required quantity",
			payload: `{"items":[{"card_name":"Emberwing Drake","set_code":"DW1"}]}`,
			wantErr: true,
		},
		{
			name:    "zero quantity",
			payload: `{"items":[{"card_name":"Emberwing Drake","set_code":"DW1","quantity":0}]}`,
			wantErr: true,
		},
		{
			name:    "unknown condition",
			payload: `{"items":[{"card_name":"Emberwing Drake","set_code":"DW1","quantity":1,"condition":"pristine"}]}`,
			wantErr: true,
		},
		{
			name:    "unexpected top-level field",
			payload: `{"items":[{"card_name":"Emberwing Drake","set_code":"DW1","quantity":1}],"source":"csv"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImportFile([]byte(tt.payload))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImportFile() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestImportInventoryRejectsInvalidFileWithoutNetworkCall(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer ts.Close()

	c, _ := newTestClient(ts, "token")
	if _, err := c.ImportInventory(context.Background(), []byte(`{"items":[]}`)); err == nil {
		t.Fatal("ImportInventory() accepted an invalid file")
	}
	if calls != 0 {
		t.Errorf("backend was called %d times for an invalid file, want 0", calls)
	}
}

func TestImportInventoryForwardsValidFile(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/inventory/import" {
			t.Errorf("path = %q, want /inventory/import", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"imported":2,"skipped":0}`))
	}))
	defer ts.Close()

	c, _ := newTestClient(ts, "token")
	result, err := c.ImportInventory(context.Background(), []byte(`{"items":[
		{"card_name":"Emberwing Drake","set_code":"DW1","quantity":2},
		{"card_name":"Tidecaller Adept","set_code":"DW2","quantity":1}
	]}`))
	if err != nil {
		t.Fatalf("ImportInventory() error = %v", err)
	}
	if result.Imported != 2 || result.Skipped != 0 {
		t.Errorf("result = %+v, want imported 2 skipped 0", result)
	}
}
