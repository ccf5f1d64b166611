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

package event

import (
	"context"
	"time"

	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/pkg/mqx"
	"github.com/ecodeclub/mq-api"
)

const OrderEventName = "order_events"

const (
	// TypeOrderPlaced 货到付款订单已下单
	TypeOrderPlaced = "order_placed"
	TypeOrderPaid   = "order_paid"
)

type OrderEvent struct {
	Type        string `json:"type"`
	OrderSN     string `json:"orderSN"`
	BuyerID     int64  `json:"buyerID"`
	TotalAmount int64  `json:"totalAmount"`
	Currency    string `json:"currency"`
	PaymentMode uint8  `json:"paymentMode"`
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	Ctime       int64  `json:"ctime"`
}

func NewOrderEvent(typ string, order domain.Order) OrderEvent {
	return OrderEvent{
		Type:        typ,
		OrderSN:     order.SN,
		BuyerID:     order.BuyerID,
		TotalAmount: order.TotalAmount,
		Currency:    order.Currency,
		PaymentMode: order.PaymentMode.ToUint8(),
		FullName:    order.Address.FullName,
		Phone:       order.Address.Phone,
		Email:       order.Address.Email,
		Ctime:       time.Now().UnixMilli(),
	}
}

//go:generate mockgen -source=./producer.go -package=evtmocks -destination=./mocks/producer.mock.go OrderEventProducer
type OrderEventProducer interface {
	Produce(ctx context.Context, evt OrderEvent) error
}

// NewOrderEventProducer 同一个订单的事件按订单号分区
func NewOrderEventProducer(q mq.MQ) (OrderEventProducer, error) {
	return mqx.NewKeyedProducer[OrderEvent](q, OrderEventName, func(evt OrderEvent) string {
		return evt.OrderSN
	})
}
