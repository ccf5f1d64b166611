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

package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ecodeclub/emall/internal/payment/internal/domain"
)

var (
	ErrSignatureMismatch = errors.New("签名不匹配")
	ErrInvalidPayload    = errors.New("回调内容非法")
)

// Sign 计算 HMAC-SHA256 并以小写十六进制返回
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature 恒定时间比较
func VerifySignature(payload []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	expected := Sign(payload, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// PaymentPayload 前端支付完成后回传的签名内容
func PaymentPayload(orderRef, paymentRef string) []byte {
	return []byte(orderRef + "|" + paymentRef)
}

type webhookBody struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity paymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// ParseWebhookEvent 必须先用原始字节验签，再解析 JSON
func ParseWebhookEvent(raw []byte, signature, secret string) (domain.WebhookEvent, error) {
	if !VerifySignature(raw, signature, secret) {
		return domain.WebhookEvent{}, ErrSignatureMismatch
	}
	var body webhookBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return domain.WebhookEvent{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	if body.Event == "" {
		return domain.WebhookEvent{}, fmt.Errorf("%w: 缺少 event 字段", ErrInvalidPayload)
	}
	return domain.WebhookEvent{
		Event:   body.Event,
		Payment: body.Payload.Payment.Entity.toDomain(),
	}, nil
}

type paymentEntity struct {
	ID               string `json:"id"`
	OrderID          string `json:"order_id"`
	Amount           int64  `json:"amount"`
	Currency         string `json:"currency"`
	Status           string `json:"status"`
	Method           string `json:"method"`
	Bank             string `json:"bank"`
	VPA              string `json:"vpa"`
	ErrorDescription string `json:"error_description"`
	Card             *struct {
		Last4 string `json:"last4"`
	} `json:"card"`
}

func (e paymentEntity) toDomain() domain.GatewayPayment {
	res := domain.GatewayPayment{
		ID:       e.ID,
		OrderRef: e.OrderID,
		Amount:   e.Amount,
		Currency: e.Currency,
		Status:   e.Status,
		ErrDesc:  e.ErrorDescription,
		Method: domain.MethodDetail{
			Method: e.Method,
			Bank:   e.Bank,
			VPA:    e.VPA,
		},
	}
	if e.Card != nil {
		res.Method.CardLast4 = e.Card.Last4
	}
	return res
}
