package content

import "testing"

func TestNormalizeSmartPunctuation(t *testing.T) {
	got := Normalize("“Hello” — it’s fine…")
	want := `"Hello" -- it's fine...`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestNormalizeDiacritics(t *testing.T) {
	if got := Normalize("résumé naïve"); got != "resume naive" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeLineEndingsAndTabs(t *testing.T) {
	got := Normalize("a\r\nb\rc\td")
	want := "a\nb\nc    d"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestNormalizeCollapsesInteriorWhitespaceOnly(t *testing.T) {
	got := Normalize("    indented  code   here")
	want := "    indented code here"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestNormalizeTrimsTrailing(t *testing.T) {
	got := Normalize("\n\nline one   \nline two\n\n\n")
	want := "line one\nline two"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
