package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestQueryInt(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantValue  int
		wantOK     bool
		wantStatus int // checked only when !wantOK
	}{
		{name: "absent means no filter", url: "/api/quotes", wantValue: 0, wantOK: true},
		{name: "empty means no filter", url: "/api/quotes?contact_id=", wantValue: 0, wantOK: true},
		{name: "numeric", url: "/api/quotes?contact_id=42", wantValue: 42, wantOK: true},
		{name: "garbage rejected", url: "/api/quotes?contact_id=abc", wantOK: false, wantStatus: http.StatusBadRequest},
		{name: "trailing junk rejected", url: "/api/quotes?contact_id=12x", wantOK: false, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, tt.url, nil)

			got, ok := queryInt(w, r, "contact_id")
			if ok != tt.wantOK {
				t.Fatalf("queryInt() ok = %v, want %v", ok, tt.wantOK)
			}
			if !tt.wantOK {
				if w.Code != tt.wantStatus {
					t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
				}
				return
			}
			if got != tt.wantValue {
				t.Errorf("queryInt() = %d, want %d", got, tt.wantValue)
			}
		})
	}
}
