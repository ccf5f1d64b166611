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

package payment

import (
	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/ecodeclub/emall/internal/payment/internal/gateway"
	"github.com/ecodeclub/emall/internal/payment/internal/service"
)

type (
	Service        = service.Service
	Config         = service.Config
	Gateway        = gateway.Gateway
	Sandbox        = gateway.Sandbox
	Intent         = domain.Intent
	GatewayPayment = domain.GatewayPayment
	MethodDetail   = domain.MethodDetail
	WebhookEvent   = domain.WebhookEvent
)

const (
	EventPaymentCaptured   = domain.EventPaymentCaptured
	EventPaymentAuthorized = domain.EventPaymentAuthorized
	EventPaymentFailed     = domain.EventPaymentFailed
	EventOrderPaid         = domain.EventOrderPaid

	GatewayPaymentCaptured   = domain.GatewayPaymentCaptured
	GatewayPaymentAuthorized = domain.GatewayPaymentAuthorized
	GatewayPaymentFailed     = domain.GatewayPaymentFailed
)

var (
	ErrSignatureMismatch  = service.ErrSignatureMismatch
	ErrInvalidWebhook     = service.ErrInvalidWebhook
	ErrGatewayUnavailable = service.ErrGatewayUnavailable
)

var (
	Sign           = gateway.Sign
	PaymentPayload = gateway.PaymentPayload
	NewSandbox     = gateway.NewSandbox
)

type Module struct {
	Svc Service
}
