package config

import (
	"strings"
	"testing"
)

func TestVersionString(t *testing.T) {
	old := Version
	Version = "1.2.3"
	defer func() { Version = old }()

	s := VersionString()
	if !strings.HasPrefix(s, "taskboard 1.2.3 ") {
		t.Errorf("VersionString() = %q", s)
	}
	if info := GetBuildInfo(); info.Version != "1.2.3" || !strings.Contains(info.Platform, "/") {
		t.Errorf("GetBuildInfo() = %+v", info)
	}
}
