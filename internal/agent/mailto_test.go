package agent

import "testing"

func TestParseMailto(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		wantTo      string
		wantSubject string
		wantErr     bool
	}{
		{
			name:        "Bare address",
			url:         "mailto:leave@shop.example",
			wantTo:      "leave@shop.example",
			wantSubject: "unsubscribe",
		},
		{
			name:        "Address with subject",
			url:         "mailto:leave@shop.example?subject=remove%20me",
			wantTo:      "leave@shop.example",
			wantSubject: "remove me",
		},
		{
			name:    "Not a mailto url",
			url:     "https://shop.example/unsub",
			wantErr: true,
		},
		{
			name:    "Empty address",
			url:     "mailto:",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			to, subject, body, err := parseMailto(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseMailto() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if to != tt.wantTo {
				t.Errorf("parseMailto() to = %q, want %q", to, tt.wantTo)
			}
			if subject != tt.wantSubject {
				t.Errorf("parseMailto() subject = %q, want %q", subject, tt.wantSubject)
			}
			if body == "" {
				t.Error("parseMailto() expected a default body")
			}
		})
	}
}
