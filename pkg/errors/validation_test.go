package errors

import "testing"

func TestValidateEntityID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"simple", "inst-42", false},
		{"spaces", "Sciences Po", false},
		{"unicode", "Université", false},
		{"empty", "", true},
		{"control", "a\x01b", true},
		{"newline", "a\nb", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntityID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEntityID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateDelimiter(t *testing.T) {
	tests := []struct {
		d       string
		wantErr bool
	}{
		{",", false},
		{";", false},
		{"\t", false},
		{"|", false},
		{"", true},
		{",,", true},
		{"\"", true},
		{"\n", true},
	}
	for _, tt := range tests {
		err := ValidateDelimiter(tt.d)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDelimiter(%q) error = %v, wantErr %v", tt.d, err, tt.wantErr)
		}
	}
}

func TestValidateColumnName(t *testing.T) {
	if err := ValidateColumnName("from_id", "from_id"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateColumnName("from_id", "  "); !Is(err, ErrCodeInvalidConfig) {
		t.Errorf("blank column: err = %v, want INVALID_CONFIG", err)
	}
}

func TestValidateSource(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr bool
	}{
		{"local path", "data/relations.csv", false},
		{"absolute path", "/tmp/relations.csv", false},
		{"https", "https://example.org/data.csv", false},
		{"http", "http://localhost:8000/data.csv", false},
		{"empty", "", true},
		{"url without host", "https://", true},
		{"null byte", "data\x00.csv", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSource(tt.source)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSource(%q) error = %v, wantErr %v", tt.source, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSource) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidSource)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	if err := ValidateURL("ftp://example.org/x.csv"); err == nil {
		t.Error("ftp scheme should be rejected")
	}
	if err := ValidateURL("https://example.org/x.csv"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
