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
	"testing"

	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifySignature(t *testing.T) {
	const secret = "key_secret"
	payload := PaymentPayload("order_9A33XWu170gUtm", "pay_29QQoUBi66xm2f")
	testCases := []struct {
		name      string
		payload   []byte
		signature string
		secret    string
		want      bool
	}{
		{
			name:      "签名正确",
			payload:   payload,
			signature: "7920f7497f3db0d8c993fa160dc7e0a1ebf7424a95a786c40c62c6059f80d04d",
			secret:    secret,
			want:      true,
		},
		{
			name:      "用其他支付号算出的签名",
			payload:   payload,
			signature: Sign(PaymentPayload("order_9A33XWu170gUtm", "pay_other"), secret),
			secret:    secret,
		},
		{
			name:      "密钥不同",
			payload:   payload,
			signature: Sign(payload, "another"),
			secret:    secret,
		},
		{
			name:    "签名为空",
			payload: payload,
			secret:  secret,
		},
		{
			name:      "密钥为空",
			payload:   payload,
			signature: Sign(payload, ""),
		},
		{
			name:      "大写签名",
			payload:   payload,
			signature: "7920F7497F3DB0D8C993FA160DC7E0A1EBF7424A95A786C40C62C6059F80D04D",
			secret:    secret,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, VerifySignature(tc.payload, tc.signature, tc.secret))
		})
	}
}

func TestParseWebhookEvent(t *testing.T) {
	const secret = "webhook_secret"
	captured := []byte(`{"entity":"event","event":"payment.captured","contains":["payment"],
"payload":{"payment":{"entity":{"id":"pay_1","entity":"payment","amount":20000,"currency":"INR",
"status":"captured","order_id":"order_1","method":"card","bank":null,"vpa":null,
"card":{"id":"card_1","last4":"1111","network":"Visa"}}}}}`)
	// 与 captured 语义相同，只是字段顺序和空白不同
	reformatted := []byte(`{"event":"payment.captured","entity":"event","contains":["payment"],"payload":{"payment":{"entity":{"id":"pay_1","entity":"payment","amount":20000,"currency":"INR","status":"captured","order_id":"order_1","method":"card","bank":null,"vpa":null,"card":{"id":"card_1","last4":"1111","network":"Visa"}}}}}`)
	failed := []byte(`{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_2","order_id":"order_2","status":"failed","method":"upi","vpa":"buyer@upi","error_description":"Payment failed"}}}}`)

	testCases := []struct {
		name      string
		raw       []byte
		signature string
		wantEvt   domain.WebhookEvent
		wantErr   error
	}{
		{
			name:      "支付成功",
			raw:       captured,
			signature: Sign(captured, secret),
			wantEvt: domain.WebhookEvent{
				Event: domain.EventPaymentCaptured,
				Payment: domain.GatewayPayment{
					ID:       "pay_1",
					OrderRef: "order_1",
					Amount:   20000,
					Currency: "INR",
					Status:   domain.GatewayPaymentCaptured,
					Method: domain.MethodDetail{
						Method:    "card",
						CardLast4: "1111",
					},
				},
			},
		},
		{
			name:      "支付失败",
			raw:       failed,
			signature: Sign(failed, secret),
			wantEvt: domain.WebhookEvent{
				Event: domain.EventPaymentFailed,
				Payment: domain.GatewayPayment{
					ID:       "pay_2",
					OrderRef: "order_2",
					Status:   domain.GatewayPaymentFailed,
					ErrDesc:  "Payment failed",
					Method: domain.MethodDetail{
						Method: "upi",
						VPA:    "buyer@upi",
					},
				},
			},
		},
		{
			name:      "签名基于重新序列化的内容",
			raw:       captured,
			signature: Sign(reformatted, secret),
			wantErr:   ErrSignatureMismatch,
		},
		{
			name:      "缺少签名",
			raw:       captured,
			signature: "",
			wantErr:   ErrSignatureMismatch,
		},
		{
			name:      "签名正确但不是 JSON",
			raw:       []byte("not json"),
			signature: Sign([]byte("not json"), secret),
			wantErr:   ErrInvalidPayload,
		},
		{
			name:      "缺少 event",
			raw:       []byte(`{"payload":{}}`),
			signature: Sign([]byte(`{"payload":{}}`), secret),
			wantErr:   ErrInvalidPayload,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			evt, err := ParseWebhookEvent(tc.raw, tc.signature, secret)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantEvt, evt)
		})
	}
}
