package buildinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()

	if info.Version == "" || info.Commit == "" || info.BuildTime == "" {
		t.Errorf("Get() has empty fields: %+v", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
}

func TestGet_LdflagsWin(t *testing.T) {
	origVersion, origCommit := Version, Commit
	defer func() { Version, Commit = origVersion, origCommit }()

	Version = "v1.2.3"
	Commit = "abc1234"

	info := Get()
	if info.Version != "v1.2.3" || info.Commit != "abc1234" {
		t.Errorf("Get() = %+v, want ldflags values", info)
	}
}

func TestString(t *testing.T) {
	s := String()
	if !strings.Contains(s, "built at") {
		t.Errorf("String() = %q", s)
	}
}
