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

package web

import (
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/order/internal/domain"
)

type PlaceOrderReq struct {
	// RequestID 客户端生成，防止重复提交
	RequestID   string  `json:"requestId"`
	Address     Address `json:"address"`
	PaymentMode uint8   `json:"paymentMode"`
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

type PlaceOrderResp struct {
	Order  Order   `json:"order"`
	Intent *Intent `json:"intent,omitempty"`
}

type Intent struct {
	GatewayOrderID string `json:"gatewayOrderId"`
	KeyID          string `json:"keyId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
}

func newIntent(src domain.Intent) Intent {
	return Intent{
		GatewayOrderID: src.GatewayOrderRef,
		KeyID:          src.KeyID,
		Amount:         src.Amount,
		Currency:       src.Currency,
	}
}

type VerifyPaymentReq struct {
	GatewayOrderID   string `json:"gatewayOrderId"`
	GatewayPaymentID string `json:"gatewayPaymentId"`
	Signature        string `json:"signature"`
	// Receipt 可选，填写时必须等于订单序列号
	Receipt string `json:"receipt"`
}

type OrderSNReq struct {
	SN string `json:"sn"`
}

type ListOrdersReq struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

type ListOrdersResp struct {
	Total  int64   `json:"total,omitempty"`
	Orders []Order `json:"orders,omitempty"`
}

type Order struct {
	SN             string      `json:"sn"`
	Items          []OrderItem `json:"items,omitempty"`
	Address        Address     `json:"address"`
	PaymentMode    uint8       `json:"paymentMode"`
	PaymentStatus  uint8       `json:"paymentStatus"`
	Status         uint8       `json:"status"`
	TotalAmount    int64       `json:"totalAmount"`
	Currency       string      `json:"currency"`
	GatewayOrderID string      `json:"gatewayOrderId,omitempty"`
	PaymentMethod  string      `json:"paymentMethod,omitempty"`
	HasCustomItems bool        `json:"hasCustomItems"`
	// RefundPending 订单取消之后才扣款成功，等待退款
	RefundPending  bool        `json:"refundPending,omitempty"`
	PaidAt         int64       `json:"paidAt,omitempty"`
	Ctime          int64       `json:"ctime"`
	Utime          int64       `json:"utime"`
}

type OrderItem struct {
	ProductID   int64              `json:"productId"`
	ProductName string             `json:"productName"`
	VariantID   int64              `json:"variantId,omitempty"`
	Size        string             `json:"size,omitempty"`
	CustomSize  *domain.CustomSize `json:"customSize,omitempty"`
	Quantity    int64              `json:"quantity"`
	UnitPrice   int64              `json:"unitPrice"`
}

func newOrder(src domain.Order) Order {
	return Order{
		SN: src.SN,
		Items: slice.Map(src.Items, func(idx int, src domain.OrderItem) OrderItem {
			return OrderItem{
				ProductID:   src.ProductID,
				ProductName: src.ProductName,
				VariantID:   src.VariantID,
				Size:        src.Size,
				CustomSize:  src.CustomSize,
				Quantity:    src.Quantity,
				UnitPrice:   src.UnitPrice,
			}
		}),
		Address:        Address(src.Address),
		PaymentMode:    src.PaymentMode.ToUint8(),
		PaymentStatus:  src.PaymentStatus.ToUint8(),
		Status:         src.Status.ToUint8(),
		TotalAmount:    src.TotalAmount,
		Currency:       src.Currency,
		GatewayOrderID: src.GatewayOrderRef,
		PaymentMethod:  src.PaymentMethod.Method,
		HasCustomItems: src.HasCustomItems,
		RefundPending:  src.NeedsRefund(),
		PaidAt:         src.PaidAt,
		Ctime:          src.Ctime,
		Utime:          src.Utime,
	}
}
