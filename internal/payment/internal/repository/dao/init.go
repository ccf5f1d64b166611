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
	"github.com/ego-component/egorm"
)

// WebhookEvent 验签通过的网关回调，用于审计和排查
type WebhookEvent struct {
	Id                int64  `gorm:"primaryKey;autoIncrement"`
	EventId           string `gorm:"type:varchar(64);not null;uniqueIndex:uniq_event_id;comment:网关事件ID"`
	Event             string `gorm:"type:varchar(64);not null;comment:事件类型"`
	GatewayOrderRef   string `gorm:"type:varchar(64);not null;default:'';index:idx_webhook_gateway_order_ref;comment:网关订单号"`
	GatewayPaymentRef string `gorm:"type:varchar(64);not null;default:'';comment:网关支付号"`
	Payload           string `gorm:"type:text;comment:原始回调内容"`
	Ctime             int64
}

func (WebhookEvent) TableName() string {
	return "payment_webhook_events"
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&WebhookEvent{})
}
