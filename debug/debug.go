// Package debug gates diagnostic logging on EXAMDIFF_DEBUG_*
// environment variables.
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Myers bool
	Merge bool
	Dir   bool
	Watch bool
}

var d *debug

func init() {
	d = &debug{}
	d.Myers = boolEnv("EXAMDIFF_DEBUG_MYERS")
	d.Merge = boolEnv("EXAMDIFF_DEBUG_MERGE")
	d.Dir = boolEnv("EXAMDIFF_DEBUG_DIR")
	d.Watch = boolEnv("EXAMDIFF_DEBUG_WATCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Myers() bool {
	return d.Myers
}
func Merge() bool {
	return d.Merge
}
func Dir() bool {
	return d.Dir
}
func Watch() bool {
	return d.Watch
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
