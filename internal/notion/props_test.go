package notion

import (
	"reflect"
	"testing"
)

func TestBuildValue(t *testing.T) {
	tests := []struct {
		name  string
		ptype string
		value any
		want  map[string]any
	}{
		{
			name:  "title",
			ptype: "title",
			value: "어린 왕자",
			want: map[string]any{
				"title": []map[string]any{{"text": map[string]any{"content": "어린 왕자"}}},
			},
		},
		{
			name:  "rich text",
			ptype: "rich_text",
			value: "생텍쥐페리",
			want: map[string]any{
				"rich_text": []map[string]any{{"text": map[string]any{"content": "생텍쥐페리"}}},
			},
		},
		{
			name:  "url",
			ptype: "url",
			value: "https://product.kyobobook.co.kr/detail/S000000001",
			want:  map[string]any{"url": "https://product.kyobobook.co.kr/detail/S000000001"},
		},
		{
			name:  "number from int",
			ptype: "number",
			value: 144,
			want:  map[string]any{"number": 144},
		},
		{
			name:  "number coerced from string",
			ptype: "number",
			value: "320",
			want:  map[string]any{"number": 320},
		},
		{
			name:  "non-numeric number dropped",
			ptype: "number",
			value: "약 300쪽",
			want:  nil,
		},
		{
			name:  "select",
			ptype: "select",
			value: "Romance",
			want:  map[string]any{"select": map[string]any{"name": "Romance"}},
		},
		{
			name:  "multi select splits on comma",
			ptype: "multi_select",
			value: "Romance, Fiction",
			want: map[string]any{
				"multi_select": []map[string]any{{"name": "Romance"}, {"name": "Fiction"}},
			},
		},
		{
			name:  "checkbox",
			ptype: "checkbox",
			value: false,
			want:  map[string]any{"checkbox": false},
		},
		{
			name:  "checkbox rejects non-bool",
			ptype: "checkbox",
			value: "true",
			want:  nil,
		},
		{
			name:  "unrecognized type skipped",
			ptype: "rollup",
			value: "whatever",
			want:  nil,
		},
		{
			name:  "nil value skipped",
			ptype: "rich_text",
			value: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildValue(tt.ptype, tt.value)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildValue(%q, %v) = %#v, want %#v", tt.ptype, tt.value, got, tt.want)
			}
		})
	}
}

func testProps() map[string]Property {
	u := "https://product.kyobobook.co.kr/detail/S123456789"
	n := float64(42)
	b := true
	return map[string]Property{
		"책 제목": {
			Type:  "title",
			Title: []RichText{{PlainText: "미드나이트 "}, {PlainText: "라이브러리"}},
		},
		"저자":    {Type: "rich_text", RichText: []RichText{{PlainText: "매트 헤이그"}}},
		"교보 URL": {Type: "url", URL: &u},
		"읽은 페이지": {Type: "number", Number: &n},
		"수집요청":   {Type: "checkbox", Checkbox: &b},
		"장르": {
			Type:        "multi_select",
			MultiSelect: []SelectOption{{Name: "Fiction"}, {Name: "Fantasy"}},
		},
		"상태": {Type: "select", Select: &SelectOption{Name: "시작 전"}},
	}
}

func TestTitlePropDiscovery(t *testing.T) {
	props := testProps()
	if got := TitleProp(props); got != "책 제목" {
		t.Errorf("TitleProp = %q, want 책 제목", got)
	}
	if got := PlainTitle(props); got != "미드나이트 라이브러리" {
		t.Errorf("PlainTitle = %q, want concatenated fragments", got)
	}
}

func TestPropAccessors(t *testing.T) {
	props := testProps()

	if got := PropType(props, "저자"); got != "rich_text" {
		t.Errorf("PropType(저자) = %q, want rich_text", got)
	}
	if got := PropType(props, "없는 속성"); got != "" {
		t.Errorf("PropType(missing) = %q, want empty", got)
	}
	if got := PlainText(props, "저자"); got != "매트 헤이그" {
		t.Errorf("PlainText(저자) = %q", got)
	}
	if got := URLValue(props, "교보 URL"); got != "https://product.kyobobook.co.kr/detail/S123456789" {
		t.Errorf("URLValue = %q", got)
	}
	if got := URLValue(props, "저자"); got != "" {
		t.Errorf("URLValue on non-url prop = %q, want empty", got)
	}
	if got := NumberValue(props, "읽은 페이지"); got != 42 {
		t.Errorf("NumberValue = %d, want 42", got)
	}
	if got := SelectValue(props, "상태"); got != "시작 전" {
		t.Errorf("SelectValue = %q, want 시작 전", got)
	}
	if got := SelectValue(props, "장르"); got != "Fiction, Fantasy" {
		t.Errorf("SelectValue(multi) = %q, want joined names", got)
	}
	if !CheckboxValue(props, "수집요청") {
		t.Error("CheckboxValue = false, want true")
	}
}
