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

package job

import (
	"context"
	"fmt"
	"time"

	"github.com/ecodeclub/emall/internal/order/internal/service"
	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/task/ecron"
)

var _ ecron.NamedJob = (*ReconcilePaymentsJob)(nil)

// ReconcilePaymentsJob 主动向网关查询支付结果，补上丢失的回调。
// 只处理创建超过 seconds 秒的订单，给正常的回调留出时间
type ReconcilePaymentsJob struct {
	svc     service.Service
	seconds int64
	limit   int
	l       *elog.Component
}

func NewReconcilePaymentsJob(svc service.Service, seconds int64, limit int) *ReconcilePaymentsJob {
	return &ReconcilePaymentsJob{
		svc:     svc,
		seconds: seconds,
		limit:   limit,
		l:       elog.DefaultLogger,
	}
}

func (r *ReconcilePaymentsJob) Name() string {
	return "reconcile_payments_job"
}

func (r *ReconcilePaymentsJob) Run(ctx context.Context) error {
	ctime := time.Now().Add(time.Duration(-r.seconds) * time.Second).UnixMilli()
	confirmed, err := r.svc.ReconcilePendingOrders(ctx, ctime, r.limit)
	if err != nil {
		return fmt.Errorf("对账失败: %w", err)
	}
	if confirmed > 0 {
		r.l.Warn("对账补确认了支付，检查回调是否正常", elog.Int("confirmed", confirmed))
	}
	return nil
}
