// Copyright 2024 The go-ethereum Authors
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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithCommit(t *testing.T) {
	assert.Equal(t, WithMeta, WithCommit("", ""))
	assert.Equal(t, WithMeta+"-9b68875d-20250301", WithCommit("9b68875d68b409eb2efdb68a4b623aaacc10a5b6", "20250301"))
	assert.Equal(t, WithMeta+"-20250301", WithCommit("abc", "20250301"))
	assert.True(t, strings.HasPrefix(WithMeta, Semantic))
	assert.True(t, strings.HasPrefix(Semantic, Family+"."))
}

func TestBuildInfoVCS(t *testing.T) {
	var tests = []struct {
		settings []debug.BuildSetting
		want     VCSInfo
		ok       bool
	}{
		{
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "9b68875d68b409eb2efdb68a4b623aaacc10a5b6"},
				{Key: "vcs.time", Value: "2025-03-01T10:20:30Z"},
				{Key: "vcs.modified", Value: "true"},
			},
			want: VCSInfo{Commit: "9b68875d68b409eb2efdb68a4b623aaacc10a5b6", Date: "20250301", Dirty: true},
			ok:   true,
		},
		{
			settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "9b68875d"}},
			want:     VCSInfo{Commit: "9b68875d"},
			ok:       false,
		},
		{
			settings: []debug.BuildSetting{{Key: "vcs.time", Value: "yesterday"}},
			ok:       false,
		},
	}
	for i, test := range tests {
		got, ok := buildInfoVCS(&debug.BuildInfo{Settings: test.settings})
		if ok != test.ok || got != test.want {
			t.Errorf("test %d: got %+v (%t), want %+v (%t)", i, got, ok, test.want, test.ok)
		}
	}
}
