// Copyright 2022 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package version

import (
	"runtime/debug"
	"time"
)

// gitCommit and gitDate are set by the linker in release builds:
//
//	-ldflags "-X github.com/sunyihoo/go-ethabi/internal/version.gitCommit=..."
var gitCommit, gitDate string

// VCSInfo describes the commit a binary was built from.
type VCSInfo struct {
	Commit string // full commit hash
	Date   string // commit date as YYYYMMDD
	Dirty  bool   // built with uncommitted changes
}

// VCS returns the commit the running binary was built from. Values set by the
// linker win over those recorded by the go tool. ok is false when neither is
// available, as in tests or when the module is built as a dependency.
// VCS 返回当前二进制文件构建所基于的提交信息。
func VCS() (info VCSInfo, ok bool) {
	if gitCommit != "" {
		return VCSInfo{Commit: gitCommit, Date: gitDate}, true
	}
	bi, found := debug.ReadBuildInfo()
	if !found || bi.Main.Path != modulePath {
		return VCSInfo{}, false
	}
	return buildInfoVCS(bi)
}

func buildInfoVCS(bi *debug.BuildInfo) (VCSInfo, bool) {
	var info VCSInfo
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Commit = s.Value
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		case "vcs.time":
			if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
				info.Date = t.UTC().Format("20060102")
			}
		}
	}
	return info, info.Commit != "" && info.Date != ""
}
