package lang

import "testing"

func TestNegotiate(t *testing.T) {
	tests := []struct {
		accept string
		want   string
	}{
		{"", Th},
		{"th-TH,th;q=0.9", Th},
		{"en-US,en;q=0.9", En},
		{"en-GB", En},
		{"fr-FR,en;q=0.5", En},
		{"ja-JP", Th},
		{"en", En},
		{";;garbage", Th},
	}
	for _, tt := range tests {
		if got := Negotiate(tt.accept); got != tt.want {
			t.Errorf("Negotiate(%q) = %q, want %q", tt.accept, got, tt.want)
		}
	}
}

func TestT(t *testing.T) {
	if got := T(En, "page_of", 2, 3); got != "Page 2 of 3" {
		t.Errorf("T(en, page_of) = %q", got)
	}
	if got := T("xx", "delete"); got != messages[Th]["delete"] {
		t.Errorf("unknown language should fall back to Thai, got %q", got)
	}
	if got := T(En, "no_such_key"); got != "no_such_key" {
		t.Errorf("unknown key = %q", got)
	}
}

func TestTablesHaveSameKeys(t *testing.T) {
	for k := range messages[Th] {
		if _, ok := messages[En][k]; !ok {
			t.Errorf("en missing %q", k)
		}
	}
	for k := range messages[En] {
		if _, ok := messages[Th][k]; !ok {
			t.Errorf("th missing %q", k)
		}
	}
}

func TestName(t *testing.T) {
	if got := Name(En, "ผัดไทย", "Pad Thai"); got != "Pad Thai" {
		t.Errorf("en = %q", got)
	}
	if got := Name(Th, "ผัดไทย", "Pad Thai"); got != "ผัดไทย" {
		t.Errorf("th = %q", got)
	}
	if got := Name(En, "ผัดไทย", ""); got != "ผัดไทย" {
		t.Errorf("en fallback = %q", got)
	}
}
