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

// 网关侧的事件类型
const (
	EventPaymentCaptured   = "payment.captured"
	EventPaymentAuthorized = "payment.authorized"
	EventPaymentFailed     = "payment.failed"
	EventOrderPaid         = "order.paid"
)

// 网关侧的支付状态
const (
	GatewayPaymentCreated    = "created"
	GatewayPaymentAuthorized = "authorized"
	GatewayPaymentCaptured   = "captured"
	GatewayPaymentRefunded   = "refunded"
	GatewayPaymentFailed     = "failed"
)

// Intent 网关侧创建的预支付订单
type Intent struct {
	// 网关订单号，例如 order_xxx
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	// 前端拉起支付时需要的公钥
	KeyID string
}

// GatewayPayment 网关侧的一次支付尝试
type GatewayPayment struct {
	ID       string
	OrderRef string
	Amount   int64
	Currency string
	Status   string
	Method   MethodDetail
	ErrDesc  string
}

// Captured 已经扣款或者已经授权，都视为支付成功
func (p GatewayPayment) Captured() bool {
	return p.Status == GatewayPaymentCaptured || p.Status == GatewayPaymentAuthorized
}

// MethodDetail 支付方式的细节，按支付方式不同只会有部分字段
type MethodDetail struct {
	Method    string
	Bank      string
	VPA       string
	CardLast4 string
}

type WebhookEvent struct {
	// 网关的事件 ID，没有的话由我们生成
	ID      string
	Event   string
	Payment GatewayPayment
	// Duplicate 表示之前已经收到过同样的事件
	Duplicate bool
}

func (e WebhookEvent) IsCaptured() bool {
	return e.Event == EventPaymentCaptured ||
		e.Event == EventPaymentAuthorized ||
		e.Event == EventOrderPaid
}

func (e WebhookEvent) IsFailed() bool {
	return e.Event == EventPaymentFailed
}
