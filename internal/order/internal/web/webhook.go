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
	"errors"
	"io"
	"net/http"

	"github.com/ecodeclub/emall/internal/order/internal/service"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

const (
	headerSignature = "X-Razorpay-Signature"
	headerEventID   = "X-Razorpay-Event-Id"
	// 网关回调的请求体不会太大
	maxWebhookBody = 1 << 20
)

// WebhookHandler 接收网关回调。网关只看 HTTP 状态码：
// 2xx 表示已处理，5xx 会触发重新投递
type WebhookHandler struct {
	svc service.Service
	l   *elog.Component
}

func NewWebhookHandler(svc service.Service) *WebhookHandler {
	return &WebhookHandler{svc: svc, l: elog.DefaultLogger}
}

func (h *WebhookHandler) PublicRoutes(server *gin.Engine) {
	server.POST("/order/payment/webhook", h.Handle)
}

func (h *WebhookHandler) Handle(ctx *gin.Context) {
	// 签名是对原始字节计算的，不能先解析再序列化
	raw, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxWebhookBody))
	if err != nil {
		h.l.Warn("读取网关回调失败", elog.FieldErr(err))
		ctx.Status(http.StatusBadRequest)
		return
	}
	err = h.svc.HandleWebhook(ctx.Request.Context(), raw,
		ctx.GetHeader(headerSignature), ctx.GetHeader(headerEventID))
	switch {
	case err == nil:
		ctx.Status(http.StatusOK)
	case errors.Is(err, payment.ErrSignatureMismatch), errors.Is(err, payment.ErrInvalidWebhook):
		h.l.Warn("拒绝网关回调", elog.FieldErr(err), elog.String("ip", ctx.ClientIP()))
		ctx.Status(http.StatusBadRequest)
	default:
		h.l.Error("处理网关回调失败", elog.FieldErr(err))
		ctx.Status(http.StatusInternalServerError)
	}
}
