package model

import "testing"

func TestRecipeIndexResolve(t *testing.T) {
	recipes := []Recipe{
		{Name: "Dal Tadka"},
		{Name: "  Jeera Rice "},
	}
	idx := BuildRecipeIndex(recipes)

	tests := []struct {
		dish  string
		found bool
		want  string
	}{
		{"Dal Tadka", true, "Dal Tadka"},
		{"dal tadka", true, "Dal Tadka"},
		{"  DAL TADKA  ", true, "Dal Tadka"},
		{"jeera rice", true, "  Jeera Rice "},
		{"Paneer Butter Masala", false, ""},
	}

	for _, tt := range tests {
		rec, ok := idx.Resolve(tt.dish)
		if ok != tt.found {
			t.Errorf("Resolve(%q) found = %v, want %v", tt.dish, ok, tt.found)
			continue
		}
		if ok && rec.Name != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.dish, rec.Name, tt.want)
		}
	}
}

func TestEffectiveConversion(t *testing.T) {
	zero := Ingredient{ConversionFactor: 0}
	if got := zero.EffectiveConversion(); got != 1 {
		t.Errorf("zero factor: EffectiveConversion() = %v, want 1", got)
	}

	set := Ingredient{ConversionFactor: 1.1}
	if got := set.EffectiveConversion(); got != 1.1 {
		t.Errorf("set factor: EffectiveConversion() = %v, want 1.1", got)
	}
}
