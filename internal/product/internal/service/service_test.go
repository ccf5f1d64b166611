// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"testing"

	"github.com/ecodeclub/emall/internal/product/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSortedLines(t *testing.T) {
	lines := []domain.ReserveLine{
		{ProductID: 3, Quantity: 1},
		{ProductID: 1, VariantID: 12, Quantity: 2},
		{ProductID: 1, VariantID: 11, Quantity: 3},
		{ProductID: 2, Quantity: 4},
	}
	assert.Equal(t, []domain.ReserveLine{
		{ProductID: 1, VariantID: 11, Quantity: 3},
		{ProductID: 1, VariantID: 12, Quantity: 2},
		{ProductID: 2, Quantity: 4},
		{ProductID: 3, Quantity: 1},
	}, sortedLines(lines))
	// 不修改调用方的切片
	assert.Equal(t, int64(3), lines[0].ProductID)
	assert.Empty(t, sortedLines(nil))
}
