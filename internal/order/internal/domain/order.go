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
	"strings"
)

type PaymentMode uint8

func (m PaymentMode) ToUint8() uint8 {
	return uint8(m)
}

func (m PaymentMode) Valid() bool {
	return m == PaymentModeCOD || m == PaymentModeOnline
}

const (
	// PaymentModeCOD 货到付款
	PaymentModeCOD    PaymentMode = 1
	PaymentModeOnline PaymentMode = 2
)

type PaymentStatus uint8

func (s PaymentStatus) ToUint8() uint8 {
	return uint8(s)
}

const (
	PaymentStatusPending  PaymentStatus = 1
	PaymentStatusPaid     PaymentStatus = 2
	PaymentStatusFailed   PaymentStatus = 3
	PaymentStatusRefunded PaymentStatus = 4
)

type OrderStatus uint8

func (s OrderStatus) ToUint8() uint8 {
	return uint8(s)
}

const (
	StatusPlaced    OrderStatus = 1
	StatusConfirmed OrderStatus = 2
	StatusShipped   OrderStatus = 3
	StatusDelivered OrderStatus = 4
	StatusCancelled OrderStatus = 5
)

type Order struct {
	ID            int64
	SN            string
	BuyerID       int64
	Items         []OrderItem
	Address       Address
	PaymentMode   PaymentMode
	PaymentStatus PaymentStatus
	Status        OrderStatus
	// TotalAmount 最小货币单位
	TotalAmount int64
	Currency    string
	// 网关侧的订单号和支付号
	GatewayOrderRef   string
	GatewayPaymentRef string
	PaymentMethod     PaymentMethod
	HasCustomItems    bool
	PaidAt            int64
	Ctime             int64
	Utime             int64
}

// CalculateTotal 按下单时冻结的单价计算，
// 数量或单价为负、或者结果溢出 int64 时第二个返回值为 false
func (o Order) CalculateTotal() (int64, bool) {
	var total int64
	for _, item := range o.Items {
		if item.UnitPrice < 0 || item.Quantity < 0 {
			return 0, false
		}
		if item.UnitPrice != 0 && item.Quantity > math.MaxInt64/item.UnitPrice {
			return 0, false
		}
		line := item.UnitPrice * item.Quantity
		if total > math.MaxInt64-line {
			return 0, false
		}
		total += line
	}
	return total, true
}

func (o Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}

// NeedsRefund 订单取消之后网关才扣款成功，需要人工退款
func (o Order) NeedsRefund() bool {
	return o.Status == StatusCancelled && o.PaymentStatus == PaymentStatusPaid
}

// Payable 在线支付、尚未支付并且没有被取消
func (o Order) Payable() bool {
	return o.PaymentMode == PaymentModeOnline &&
		o.Status == StatusPlaced &&
		o.PaymentStatus != PaymentStatusPaid
}

type OrderItem struct {
	ProductID   int64
	ProductName string
	// VariantID 为 0 时扣减商品本身的库存
	VariantID  int64
	Size       string
	CustomSize *CustomSize
	Quantity   int64
	// UnitPrice 加入购物车时的单价，下单后不再变化
	UnitPrice int64
}

type CustomSize struct {
	Length   float64 `json:"length,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Area     float64 `json:"area,omitempty"`
	Diameter float64 `json:"diameter,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

type Address struct {
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Email      string `json:"email,omitempty"`
}

// MissingFields 返回缺失的必填字段，Email 可选
func (a Address) MissingFields() []string {
	fields := []struct {
		name string
		val  string
	}{
		{"fullName", a.FullName},
		{"phone", a.Phone},
		{"street", a.Street},
		{"city", a.City},
		{"state", a.State},
		{"postalCode", a.PostalCode},
		{"country", a.Country},
	}
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.val) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

type PaymentMethod struct {
	Method    string
	Bank      string
	VPA       string
	CardLast4 string
}

// Intent 前端拉起支付需要的信息
type Intent struct {
	GatewayOrderRef string
	KeyID           string
	Amount          int64
	Currency        string
}

type PlaceResult struct {
	Order Order
	// 货到付款时为空
	Intent *Intent
}

// Payment 网关确认的一次支付
type Payment struct {
	GatewayOrderRef   string
	GatewayPaymentRef string
	Method            PaymentMethod
}
