package similarity

import "testing"

func TestScoreIdentity(t *testing.T) {
	tests := []string{
		"the great gatsby",
		"미드나이트 라이브러리",
		"a",
		"ab",
		"Data Structures & Algorithms",
	}
	for _, s := range tests {
		if got := Score(s, s); got != 1.0 {
			t.Errorf("Score(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestScoreEmptyQuery(t *testing.T) {
	for _, cand := range []string{"", "anything", "미드나이트"} {
		if got := Score("", cand); got != 0.0 {
			t.Errorf("Score(\"\", %q) = %v, want 0.0", cand, got)
		}
	}
}

func TestScoreEmptyCandidate(t *testing.T) {
	if got := Score("some title", ""); got != 0.0 {
		t.Errorf("Score with empty candidate = %v, want 0.0", got)
	}
}

func TestScoreAsymmetric(t *testing.T) {
	// The candidate contains the whole query plus extra text, so the
	// query's bigrams are fully covered.
	if got := Score("gatsby", "the great gatsby"); got != 1.0 {
		t.Errorf("Score(query ⊂ candidate) = %v, want 1.0", got)
	}
	// The other direction is partial.
	if got := Score("the great gatsby", "gatsby"); got >= 1.0 {
		t.Errorf("Score(candidate ⊂ query) = %v, want < 1.0", got)
	}
}

func TestScoreRanksCandidates(t *testing.T) {
	query := "미드나이트 라이브러리"
	near := Score(query, "미드나이트 라이브러리 (특별판)")
	far := Score(query, "다른 책")
	if near <= far {
		t.Errorf("expected %q to outscore %q: near=%v far=%v",
			"미드나이트 라이브러리 (특별판)", "다른 책", near, far)
	}
}

func TestScoreNormalizes(t *testing.T) {
	if got := Score("The  Great\tGatsby ", "the great gatsby"); got != 1.0 {
		t.Errorf("Score should normalize case and whitespace, got %v", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Hello   World  ", "hello world"},
		{"MiXeD\tCase\n", "mixed case"},
		{"", ""},
		{"한글  제목", "한글 제목"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
