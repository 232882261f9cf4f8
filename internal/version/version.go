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

// Package version renders the release version of the ethabi binaries.
package version

import (
	"fmt"
	"strings"

	"github.com/sunyihoo/go-ethabi/version"
)

const modulePath = "github.com/sunyihoo/go-ethabi"

var (
	// Family is the major.minor release line, e.g. "0.4".
	Family = fmt.Sprintf("%d.%d", version.Major, version.Minor)
	// Semantic is the full release number, e.g. "0.4.0".
	Semantic = fmt.Sprintf("%s.%d", Family, version.Patch)
	// WithMeta is Semantic followed by the release metadata, e.g. "0.4.0-unstable".
	WithMeta = joinVersion(Semantic, version.Meta)
)

// WithCommit appends the short commit hash and, except for stable releases,
// the commit date to WithMeta.
func WithCommit(gitCommit, gitDate string) string {
	vsn := WithMeta
	if len(gitCommit) >= 8 {
		vsn = joinVersion(vsn, gitCommit[:8])
	}
	if version.Meta != "stable" {
		vsn = joinVersion(vsn, gitDate)
	}
	return vsn
}

func joinVersion(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "-")
}
