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

package order

import (
	"testing"

	"github.com/gotomicro/ego/core/econf"
	"github.com/stretchr/testify/assert"
)

func TestLoadExpireConfig(t *testing.T) {
	testCases := []struct {
		name string
		conf map[string]any
		want expireConfig
	}{
		{
			name: "默认值",
			conf: map[string]any{},
			want: expireConfig{Minutes: 30, ReconcileSeconds: 120, Limit: 100},
		},
		{
			name: "自定义",
			conf: map[string]any{"minutes": 15, "reconcileSeconds": 60, "limit": 20},
			want: expireConfig{Minutes: 15, ReconcileSeconds: 60, Limit: 20},
		},
		{
			name: "非正数退回默认值",
			conf: map[string]any{"minutes": -1, "reconcileSeconds": 0, "limit": 0},
			want: expireConfig{Minutes: 30, ReconcileSeconds: 120, Limit: 100},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			econf.Set("order.expire", tc.conf)
			assert.Equal(t, tc.want, loadExpireConfig())
		})
	}
}
