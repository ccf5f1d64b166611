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

package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrder_CalculateTotal(t *testing.T) {
	testCases := []struct {
		name      string
		items     []OrderItem
		wantTotal int64
		wantOK    bool
	}{
		{
			name: "正常",
			items: []OrderItem{
				{Quantity: 2, UnitPrice: 100},
				{Quantity: 3, UnitPrice: 150},
			},
			wantTotal: 650,
			wantOK:    true,
		},
		{
			name:   "单行溢出",
			items:  []OrderItem{{Quantity: math.MaxInt64 / 10, UnitPrice: 11}},
			wantOK: false,
		},
		{
			name: "累加溢出",
			items: []OrderItem{
				{Quantity: 1, UnitPrice: math.MaxInt64},
				{Quantity: 1, UnitPrice: 1},
			},
			wantOK: false,
		},
		{
			name:   "负数量",
			items:  []OrderItem{{Quantity: -1, UnitPrice: 100}},
			wantOK: false,
		},
		{
			name:      "单价为零",
			items:     []OrderItem{{Quantity: math.MaxInt64, UnitPrice: 0}},
			wantTotal: 0,
			wantOK:    true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			total, ok := Order{Items: tc.items}.CalculateTotal()
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantTotal, total)
		})
	}
}

func TestOrder_NeedsRefund(t *testing.T) {
	assert.True(t, Order{Status: StatusCancelled, PaymentStatus: PaymentStatusPaid}.NeedsRefund())
	assert.False(t, Order{Status: StatusCancelled, PaymentStatus: PaymentStatusPending}.NeedsRefund())
	assert.False(t, Order{Status: StatusConfirmed, PaymentStatus: PaymentStatusPaid}.NeedsRefund())
}
