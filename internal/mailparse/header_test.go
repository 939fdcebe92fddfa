package mailparse

import "testing"

func TestDecodeHeader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "Plain ASCII",
			input:    "Hello World",
			expected: "Hello World",
			wantErr:  false,
		},
		{
			name:     "UTF-8 encoded",
			input:    "=?UTF-8?Q?Derni=C3=A8re_chance_de_vous_d=C3=A9sabonner?=",
			expected: "Dernière chance de vous désabonner",
			wantErr:  false,
		},
		{
			name:     "ISO-8859-1 encoded",
			input:    "=?ISO-8859-1?Q?Caf=E9?=",
			expected: "Café",
			wantErr:  false,
		},
		{
			name:     "Base64 encoded",
			input:    "=?UTF-8?B?SGVsbG8gV29ybGQ=?=",
			expected: "Hello World",
			wantErr:  false,
		},
		{
			name:     "Mixed encoded and plain segments",
			input:    "=?UTF-8?B?SGVsbG8=?= =?ISO-8859-1?Q?Caf=E9?=",
			expected: "HelloCafé",
			wantErr:  false,
		},
		{
			name:     "KOI8-R through the charset table",
			input:    "=?KOI8-R?Q?=F0=D2=C9=D7=C5=D4?=",
			expected: "Привет",
			wantErr:  false,
		},
		{
			name:     "GBK registered at init",
			input:    "=?GBK?B?xOO6ww==?=",
			expected: "你好",
			wantErr:  false,
		},
		{
			name:    "Unknown charset propagates an error",
			input:   "=?X-MYSTERY?Q?abc?=",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeHeader(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("DecodeHeader() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil && got != tt.expected {
				t.Errorf("DecodeHeader() = %v, want %v", got, tt.expected)
			}
		})
	}
}
