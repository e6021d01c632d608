package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Build bool
	Patch bool
	Scan  bool
	Eval  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Build = boolEnv("LIVE_DEBUG_BUILD")
	d.Patch = boolEnv("LIVE_DEBUG_PATCH")
	d.Scan = boolEnv("LIVE_DEBUG_SCAN")
	d.Eval = boolEnv("LIVE_DEBUG_EVAL")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Build() bool {
	return d.Build
}
func Patch() bool {
	return d.Patch
}
func Scan() bool {
	return d.Scan
}
func Eval() bool {
	return d.Eval
}
