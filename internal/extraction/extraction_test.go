package extraction

import (
	"errors"
	"testing"
)

func TestRecoverJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "clean object",
			raw:  `{"name": "Dal"}`,
			want: `{"name": "Dal"}`,
		},
		{
			name: "clean array",
			raw:  `[{"item_name": "Lentils"}]`,
			want: `[{"item_name": "Lentils"}]`,
		},
		{
			name: "json code fence",
			raw:  "```json\n{\"name\": \"Dal\"}\n```",
			want: `{"name": "Dal"}`,
		},
		{
			name: "bare code fence",
			raw:  "```\n[1, 2]\n```",
			want: `[1, 2]`,
		},
		{
			name: "prose around array",
			raw:  `Here is the extracted data: [{"item_name": "Ghee", "price": 42}] Hope that helps!`,
			want: `[{"item_name": "Ghee", "price": 42}]`,
		},
		{
			name: "prose around object",
			raw:  `The recipe is {"name": "Dal", "ingredients": []} as requested.`,
			want: `{"name": "Dal", "ingredients": []}`,
		},
		{
			name:    "empty response",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			raw:     "   \n\t ",
			wantErr: true,
		},
		{
			name:    "no json at all",
			raw:     "I could not read the document, sorry.",
			wantErr: true,
		},
		{
			name:    "broken json",
			raw:     `{"name": "Dal"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RecoverJSON(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrExtractionFailed) {
					t.Fatalf("err = %v, want ErrExtractionFailed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
