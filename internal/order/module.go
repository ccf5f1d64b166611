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
	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/order/internal/event"
	"github.com/ecodeclub/emall/internal/order/internal/job"
	"github.com/ecodeclub/emall/internal/order/internal/service"
	"github.com/ecodeclub/emall/internal/order/internal/web"
)

type (
	Handler               = web.Handler
	WebhookHandler        = web.WebhookHandler
	Service               = service.Service
	Order                 = domain.Order
	OrderItem             = domain.OrderItem
	Address               = domain.Address
	PaymentMode           = domain.PaymentMode
	PaymentStatus         = domain.PaymentStatus
	OrderStatus           = domain.OrderStatus
	Intent                = domain.Intent
	Payment               = domain.Payment
	OrderEvent            = event.OrderEvent
	CloseExpiredOrdersJob = job.CloseExpiredOrdersJob
	ReconcilePaymentsJob  = job.ReconcilePaymentsJob
)

const (
	PaymentModeCOD    = domain.PaymentModeCOD
	PaymentModeOnline = domain.PaymentModeOnline

	PaymentStatusPending  = domain.PaymentStatusPending
	PaymentStatusPaid     = domain.PaymentStatusPaid
	PaymentStatusFailed   = domain.PaymentStatusFailed
	PaymentStatusRefunded = domain.PaymentStatusRefunded

	StatusPlaced    = domain.StatusPlaced
	StatusConfirmed = domain.StatusConfirmed
	StatusShipped   = domain.StatusShipped
	StatusDelivered = domain.StatusDelivered
	StatusCancelled = domain.StatusCancelled

	OrderEventName  = event.OrderEventName
	TypeOrderPlaced = event.TypeOrderPlaced
	TypeOrderPaid   = event.TypeOrderPaid
)

var (
	ErrEmptyCart          = service.ErrEmptyCart
	ErrInvalidAddress     = service.ErrInvalidAddress
	ErrOrderNotFound      = service.ErrOrderNotFound
	ErrInsufficientStock  = service.ErrInsufficientStock
	ErrOrderCancelled     = service.ErrOrderCancelled
	ErrReceiptMismatch    = service.ErrReceiptMismatch
	ErrSignatureMismatch  = service.ErrSignatureMismatch
	ErrGatewayUnavailable = service.ErrGatewayUnavailable
)

type Module struct {
	Hdl                   *Handler
	WebhookHdl            *WebhookHandler
	Svc                   Service
	CloseExpiredOrdersJob *CloseExpiredOrdersJob
	ReconcilePaymentsJob  *ReconcilePaymentsJob
}
