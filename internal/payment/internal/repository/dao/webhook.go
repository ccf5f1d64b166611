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

package dao

import (
	"context"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm/clause"
)

type WebhookEventDAO interface {
	// Insert 返回 false 表示同一个事件已经记录过
	Insert(ctx context.Context, evt WebhookEvent) (bool, error)
	FindByGatewayOrderRef(ctx context.Context, orderRef string) ([]WebhookEvent, error)
}

type WebhookEventGORMDAO struct {
	db *egorm.Component
}

func NewWebhookEventGORMDAO(db *egorm.Component) WebhookEventDAO {
	return &WebhookEventGORMDAO{db: db}
}

func (d *WebhookEventGORMDAO) Insert(ctx context.Context, evt WebhookEvent) (bool, error) {
	evt.Ctime = time.Now().UnixMilli()
	res := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoNothing: true,
	}).Create(&evt)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (d *WebhookEventGORMDAO) FindByGatewayOrderRef(ctx context.Context, orderRef string) ([]WebhookEvent, error) {
	var res []WebhookEvent
	err := d.db.WithContext(ctx).
		Where("gateway_order_ref = ?", orderRef).
		Order("id ASC").
		Find(&res).Error
	return res, err
}
