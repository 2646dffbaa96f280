package middleware

import (
	"strings"
	"testing"
)

func TestValidateUserID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{"guid", "3f2504e0-4f89-11d3-9a0c-0305e82c3301", "3f2504e0-4f89-11d3-9a0c-0305e82c3301", false},
		{"hashed id", "a1b2c3d4e5", "a1b2c3d4e5", false},
		{"trims whitespace", "  user-1  ", "user-1", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"too long", strings.Repeat("a", 65), "", true},
		{"invalid characters", "user;drop table", "", true},
		{"path traversal", "../etc/passwd", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, msg := ValidateUserID(tt.input)
			if tt.wantErr && msg == "" {
				t.Errorf("ValidateUserID(%q) accepted, want rejection", tt.input)
			}
			if !tt.wantErr && msg != "" {
				t.Errorf("ValidateUserID(%q) rejected: %s", tt.input, msg)
			}
			if id != tt.wantID {
				t.Errorf("id = %q, want %q", id, tt.wantID)
			}
		})
	}
}

func TestValidateChannelID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"youtube channel id", "UC_x5XG1OV2P6uZZ5FSM9Ttw", false},
		{"empty", "", true},
		{"too long", strings.Repeat("U", 33), true},
		{"invalid characters", "UC<script>", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, msg := ValidateChannelID(tt.input)
			if tt.wantErr && msg == "" {
				t.Errorf("ValidateChannelID(%q) accepted, want rejection", tt.input)
			}
			if !tt.wantErr && msg != "" {
				t.Errorf("ValidateChannelID(%q) rejected: %s", tt.input, msg)
			}
		})
	}
}
