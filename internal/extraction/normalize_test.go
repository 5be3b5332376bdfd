package extraction

import "testing"

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"leading whitespace", "  \n```json\n{}\n```  ", "{}"},
		{"unclosed fence", "```json\n{}", "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.in); got != tt.want {
				t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToFloat(t *testing.T) {
	if got := toFloat(float64(42.5)); got == nil || *got != 42.5 {
		t.Errorf("toFloat(42.5) = %v", got)
	}
	if got := toFloat(" 99.9 "); got == nil || *got != 99.9 {
		t.Errorf("toFloat(\" 99.9 \") = %v", got)
	}
	if got := toFloat("not a number"); got != nil {
		t.Errorf("toFloat(non-numeric) = %v, want nil", got)
	}
	if got := toFloat(nil); got != nil {
		t.Errorf("toFloat(nil) = %v, want nil", got)
	}
	if got := toFloat(true); got != nil {
		t.Errorf("toFloat(bool) = %v, want nil", got)
	}
}

func TestToInt(t *testing.T) {
	if got := toInt(float64(7), 1); got != 7 {
		t.Errorf("toInt(7) = %d", got)
	}
	if got := toInt(float64(7.9), 1); got != 7 {
		t.Errorf("toInt(7.9) = %d, want truncation", got)
	}
	if got := toInt("12", 1); got != 12 {
		t.Errorf("toInt(\"12\") = %d", got)
	}
	if got := toInt("twelve", 1); got != 1 {
		t.Errorf("toInt(non-numeric) = %d, want default", got)
	}
	if got := toInt(nil, 5); got != 5 {
		t.Errorf("toInt(nil) = %d, want default", got)
	}
}

func TestIsISODate(t *testing.T) {
	valid := []string{"2024-03-15", "2024-03-15T10:30:00", "2024-03-15T10:30:00Z"}
	for _, s := range valid {
		if !isISODate(s) {
			t.Errorf("isISODate(%q) = false, want true", s)
		}
	}

	invalid := []string{"next month", "15/03/2024", "March 15, 2024", "2024-13-45", ""}
	for _, s := range invalid {
		if isISODate(s) {
			t.Errorf("isISODate(%q) = true, want false", s)
		}
	}
}

func TestNormalizeItems(t *testing.T) {
	in := []any{
		map[string]any{"name": "Laptops", "quantity": float64(50), "specifications": "16GB RAM"},
		map[string]any{"name": "Docks"},
		map[string]any{"quantity": float64(3)},
		map[string]any{"name": ""},
		"not an object",
		float64(42),
	}

	items := normalizeItems(in)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2: %+v", len(items), items)
	}
	if items[0].Name != "Laptops" || items[0].Quantity != 50 || items[0].Specifications != "16GB RAM" {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].Name != "Docks" || items[1].Quantity != 1 || items[1].Specifications != "" {
		t.Errorf("items[1] = %+v", items[1])
	}
}

func TestNormalizeItemsNotAList(t *testing.T) {
	for _, v := range []any{nil, "items", map[string]any{"name": "x"}} {
		items := normalizeItems(v)
		if items == nil || len(items) != 0 {
			t.Errorf("normalizeItems(%v) = %v, want empty non-nil slice", v, items)
		}
	}
}
