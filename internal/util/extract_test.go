package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "plus and subdomain",
			text: "contact me at jane.doe+hr@company.co.uk please",
			want: "jane.doe+hr@company.co.uk",
		},
		{
			name: "first match wins",
			text: "a@example.com and b@example.com",
			want: "a@example.com",
		},
		{
			name: "mixed case",
			text: "Reach me: John.Doe@Example.COM",
			want: "John.Doe@Example.COM",
		},
		{
			name: "no at token",
			text: "no contact details in this resume",
			want: "",
		},
		{
			name: "tld too short",
			text: "broken@host.x",
			want: "",
		},
		{
			name: "empty text",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractEmail(tt.text))
		})
	}
}

func TestExtractPDFTextRejectsGarbage(t *testing.T) {
	_, err := ExtractPDFText([]byte("this is not a pdf"))
	assert.Error(t, err)
}
