package main

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEnvFunc(t *testing.T) {
	env := map[string]any{}
	for _, a := range []string{"scale=2", "theme.dark=true", "theme.name=night"} {
		if err := envFunc(env, a); err != nil {
			t.Fatalf("%s: %v", a, err)
		}
	}
	if got := fmt.Sprint(env["scale"]); got != "2" {
		t.Errorf("scale %s", got)
	}
	want := map[string]any{"dark": true, "name": "night"}
	if diff := cmp.Diff(want, env["theme"]); diff != "" {
		t.Errorf("theme (-want +got):\n%s", diff)
	}
	if err := envFunc(env, "scale.x=1"); err == nil {
		t.Error("expected error descending into a scalar")
	}
	if err := envFunc(env, "novalue"); err == nil {
		t.Error("expected usage error")
	}
}

func TestCount(t *testing.T) {
	if got := count(true, false, true); got != 2 {
		t.Errorf("got %d", got)
	}
}
