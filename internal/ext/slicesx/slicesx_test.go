// Copyright 2024-2026 The fmtkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package slicesx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fmtkit/fmtkit/internal/ext/slicesx"
)

func TestLast(t *testing.T) {
	t.Parallel()

	_, ok := slicesx.Last([]int(nil))
	assert.False(t, ok)

	last, ok := slicesx.Last([]int{1, 2, 3})
	assert.True(t, ok)
	assert.Equal(t, 3, last)
}

func TestPop(t *testing.T) {
	t.Parallel()

	s := []string{"a", "b"}
	popped, ok := slicesx.Pop(&s)
	assert.True(t, ok)
	assert.Equal(t, "b", popped)
	assert.Equal(t, []string{"a"}, s)

	s = nil
	_, ok = slicesx.Pop(&s)
	assert.False(t, ok)
}

func TestSum(t *testing.T) {
	t.Parallel()

	assert.Zero(t, slicesx.Sum([]int(nil)))
	assert.Equal(t, 6, slicesx.Sum([]int{1, 2, 3}))
}
