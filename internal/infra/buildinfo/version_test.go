package buildinfo

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()

	if info.Version == "" || info.Commit == "" || info.BuildTime == "" {
		t.Errorf("Get() left fields empty: %+v", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
}

func TestString(t *testing.T) {
	s := String()
	if !strings.Contains(s, Get().Version) || !strings.Contains(s, "built at") {
		t.Errorf("String() = %q", s)
	}
}

func TestFillFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2024-06-01T00:00:00Z"},
		},
	}

	got := fillFromBuildInfo(Info{Version: "dev", Commit: "unknown", BuildTime: "unknown"}, bi)
	if got.Version != "v1.2.3" {
		t.Errorf("Version = %q, want v1.2.3", got.Version)
	}
	if got.Commit != "0123456789ab" {
		t.Errorf("Commit = %q, want 0123456789ab", got.Commit)
	}
	if got.BuildTime != "2024-06-01T00:00:00Z" {
		t.Errorf("BuildTime = %q", got.BuildTime)
	}

	// ldflags values win.
	got = fillFromBuildInfo(Info{Version: "v9.0.0", Commit: "abc", BuildTime: "now"}, bi)
	if got.Version != "v9.0.0" || got.Commit != "abc" || got.BuildTime != "now" {
		t.Errorf("injected values overwritten: %+v", got)
	}

	// Development builds keep "dev".
	got = fillFromBuildInfo(Info{Version: "dev"}, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if got.Version != "dev" {
		t.Errorf("Version = %q, want dev", got.Version)
	}
}
