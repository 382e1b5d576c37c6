package editor

import "testing"

func TestEasySymbolTable(t *testing.T) {
	for _, scenario := range []struct {
		key  byte
		want string
	}{
		{'[', "「"},
		{']', "」"},
		{',', "，"},
		{'.', "。"},
		{'?', "？"},
	} {
		sym, ok := easySymbol(scenario.key)
		if !ok || sym != scenario.want {
			t.Errorf("easy symbol for %q should be %s, is %s", scenario.key, scenario.want, sym)
		}
	}
	if _, ok := easySymbol('x'); ok {
		t.Error("letters are not easy symbols")
	}
}

func TestFullshape(t *testing.T) {
	for _, scenario := range []struct {
		key  byte
		want string
	}{
		{'!', "！"},
		{'a', "ａ"},
		{'5', "５"},
	} {
		if got := fullshape(scenario.key); got != scenario.want {
			t.Errorf("fullshape of %q should be %s, is %s", scenario.key, scenario.want, got)
		}
	}
}
