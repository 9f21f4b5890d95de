package cli

import "testing"

func TestParseConfigLineBasic(t *testing.T) {
	key, value, ok := parseConfigLine("shell = /bin/bash")
	if !ok || key != "shell" || value == nil || *value != "/bin/bash" {
		t.Fatalf("got key=%q value=%v ok=%v", key, value, ok)
	}
}

func TestParseConfigLineCommentAndBlank(t *testing.T) {
	if _, _, ok := parseConfigLine("# a comment"); ok {
		t.Error("comment-only line should be ignored")
	}
	if _, _, ok := parseConfigLine("   "); ok {
		t.Error("blank line should be ignored")
	}
}

func TestParseConfigLineTrailingComment(t *testing.T) {
	key, value, ok := parseConfigLine("cols = 80 # default width")
	if !ok || key != "cols" || value == nil || *value != "80" {
		t.Fatalf("got key=%q value=%v ok=%v", key, value, ok)
	}
}

func TestParseConfigLineQuotedValueWithHash(t *testing.T) {
	key, value, ok := parseConfigLine(`title = 'session #1'`)
	if !ok || key != "title" || value == nil || *value != "session #1" {
		t.Fatalf("got key=%q value=%v ok=%v", key, value, ok)
	}
}

func TestParseConfigLineBackslashEscape(t *testing.T) {
	key, value, ok := parseConfigLine(`prompt = 'it\'s here'`)
	if !ok || key != "prompt" || value == nil || *value != "it's here" {
		t.Fatalf("got key=%q value=%v ok=%v", key, value, ok)
	}
}

func TestParseConfigLineUnterminatedQuoteIsMalformed(t *testing.T) {
	key, value, ok := parseConfigLine(`title = 'unterminated`)
	if !ok {
		t.Fatal("expected ok=true (line looked like an assignment) with a nil value")
	}
	if key != "title" || value != nil {
		t.Fatalf("got key=%q value=%v, want key=title value=nil", key, value)
	}
}

func TestConfigTypedAccessors(t *testing.T) {
	c := &Config{values: map[string]string{
		"cols":     "80",
		"autosize": "true",
		"scale":    "1.5",
		"bad_num":  "notanumber",
	}}
	if got := c.Int("cols", -1, 1, 1000); got != 80 {
		t.Errorf("Int(cols) = %d, want 80", got)
	}
	if got := c.Int("bad_num", -1, 1, 1000); got != -1 {
		t.Errorf("Int(bad_num) = %d, want default -1", got)
	}
	if got := c.Bool("autosize", false); got != true {
		t.Errorf("Bool(autosize) = %v, want true", got)
	}
	if got := c.Float("scale", 0, 0, 10); got != 1.5 {
		t.Errorf("Float(scale) = %v, want 1.5", got)
	}
	if got := c.String("missing", "fallback"); got != "fallback" {
		t.Errorf("String(missing) = %q, want fallback", got)
	}
}
