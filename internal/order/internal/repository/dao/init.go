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
	"github.com/ecodeclub/ekit/sqlx"
	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ego-component/egorm"
)

type Order struct {
	Id                int64                           `gorm:"primaryKey;autoIncrement;comment:订单自增ID"`
	SN                string                          `gorm:"column:sn;type:varchar(64);not null;uniqueIndex:uniq_order_sn;comment:订单序列号"`
	BuyerId           int64                           `gorm:"not null;index:idx_buyer_id;comment:购买者ID"`
	PaymentMode       uint8                           `gorm:"type:tinyint unsigned;not null;comment:支付方式 1=货到付款 2=在线支付"`
	PaymentStatus     uint8                           `gorm:"type:tinyint unsigned;not null;default:1;comment:支付状态 1=待支付 2=已支付 3=支付失败 4=已退款"`
	Status            uint8                           `gorm:"type:tinyint unsigned;not null;default:1;index:idx_status_ctime,priority:1;comment:订单状态 1=已下单 2=已确认 3=已发货 4=已签收 5=已取消"`
	TotalAmount       int64                           `gorm:"not null;comment:总金额,最小货币单位"`
	Currency          string                          `gorm:"type:varchar(8);not null;comment:币种"`
	GatewayOrderRef   string                          `gorm:"type:varchar(64);not null;default:'';index:idx_gateway_order_ref;comment:网关订单号"`
	GatewayPaymentRef string                          `gorm:"type:varchar(64);not null;default:'';comment:网关支付号"`
	PaymentMethod     string                          `gorm:"type:varchar(32);not null;default:'';comment:支付方式,如card/upi/netbanking"`
	PaymentBank       string                          `gorm:"type:varchar(64);not null;default:'';comment:网银银行"`
	PaymentVpa        string                          `gorm:"type:varchar(128);not null;default:'';comment:UPI地址"`
	CardLast4         string                          `gorm:"type:varchar(4);not null;default:'';comment:卡号后四位"`
	HasCustomItems    bool                            `gorm:"not null;default:false;comment:是否包含定制尺寸的商品"`
	Address           sqlx.JsonColumn[domain.Address] `gorm:"type:json;comment:收货地址快照"`
	PaidAt            int64                           `gorm:"not null;default:0;comment:支付时间"`
	Ctime             int64                           `gorm:"index:idx_status_ctime,priority:2"`
	Utime             int64
}

type OrderItem struct {
	Id          int64                              `gorm:"primaryKey;autoIncrement;comment:订单项自增ID"`
	OrderId     int64                              `gorm:"not null;index:idx_order_id;comment:订单自增ID"`
	ProductId   int64                              `gorm:"not null;comment:商品ID"`
	VariantId   int64                              `gorm:"not null;default:0;comment:规格ID,0表示无规格"`
	ProductName string                             `gorm:"type:varchar(255);not null;comment:商品名称快照"`
	Size        string                             `gorm:"type:varchar(32);not null;default:'';comment:尺码"`
	CustomSize  sqlx.JsonColumn[domain.CustomSize] `gorm:"type:json;comment:定制尺寸JSON"`
	Quantity    int64                              `gorm:"not null;comment:购买数量"`
	UnitPrice   int64                              `gorm:"not null;comment:下单时单价,最小货币单位"`
	Ctime       int64
	Utime       int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Order{}, &OrderItem{})
}
