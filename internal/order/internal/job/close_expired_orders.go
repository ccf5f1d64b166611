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

var _ ecron.NamedJob = (*CloseExpiredOrdersJob)(nil)

// CloseExpiredOrdersJob 关闭超过 minutes 分钟仍未支付的在线订单
type CloseExpiredOrdersJob struct {
	svc     service.Service
	minutes int64
	limit   int
	l       *elog.Component
}

func NewCloseExpiredOrdersJob(svc service.Service, minutes int64, limit int) *CloseExpiredOrdersJob {
	return &CloseExpiredOrdersJob{
		svc:     svc,
		minutes: minutes,
		limit:   limit,
		l:       elog.DefaultLogger,
	}
}

func (c *CloseExpiredOrdersJob) Name() string {
	return "close_expired_orders_job"
}

func (c *CloseExpiredOrdersJob) Run(ctx context.Context) error {
	ctime := time.Now().Add(time.Duration(-c.minutes) * time.Minute).UnixMilli()
	closed, err := c.svc.CloseExpiredOrders(ctx, ctime, c.limit)
	if err != nil {
		return fmt.Errorf("关闭过期订单失败: %w", err)
	}
	c.l.Info("关闭过期订单", elog.Int("closed", closed))
	return nil
}
