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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/order/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

const requestIDExpiration = 10 * time.Minute

type Handler struct {
	svc   service.Service
	cache ecache.Cache
	l     *elog.Component
}

func NewHandler(svc service.Service, cache ecache.Cache) *Handler {
	return &Handler{svc: svc, cache: cache, l: elog.DefaultLogger}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/order")
	g.POST("/place", ginx.BS[PlaceOrderReq](h.PlaceOrder))
	g.POST("/payment/verify", ginx.BS[VerifyPaymentReq](h.VerifyPayment))
	g.POST("/payment/retry", ginx.BS[OrderSNReq](h.RetryPayment))
	g.POST("/detail", ginx.BS[OrderSNReq](h.Detail))
	g.POST("/list", ginx.BS[ListOrdersReq](h.List))
	g.POST("/cancel", ginx.BS[OrderSNReq](h.Cancel))
}

func (h *Handler) PlaceOrder(ctx *ginx.Context, req PlaceOrderReq, sess session.Session) (ginx.Result, error) {
	uid := sess.Claims().Uid
	if req.RequestID != "" {
		ok, err := h.cache.SetNX(ctx.Request.Context(), h.requestKey(uid, req.RequestID), req.RequestID, requestIDExpiration)
		if err != nil {
			return systemErrorResult, fmt.Errorf("缓存请求ID失败: %w", err)
		}
		if !ok {
			return duplicateRequestResult, nil
		}
	}
	res, err := h.svc.PlaceOrder(ctx.Request.Context(), uid,
		domain.Address(req.Address), domain.PaymentMode(req.PaymentMode))
	if err != nil {
		// 下单失败允许使用同一个请求ID重试
		h.releaseRequestID(ctx.Request.Context(), uid, req.RequestID)
		return h.errorResult(err)
	}
	resp := PlaceOrderResp{Order: newOrder(res.Order)}
	if res.Intent != nil {
		intent := newIntent(*res.Intent)
		resp.Intent = &intent
	}
	return ginx.Result{Data: resp}, nil
}

func (h *Handler) requestKey(uid int64, requestID string) string {
	return fmt.Sprintf("order:place:%d:%s", uid, requestID)
}

func (h *Handler) releaseRequestID(ctx context.Context, uid int64, requestID string) {
	if requestID == "" {
		return
	}
	if _, err := h.cache.Delete(ctx, h.requestKey(uid, requestID)); err != nil {
		h.l.Warn("释放请求ID失败", elog.FieldErr(err), elog.String("requestID", requestID))
	}
}

// VerifyPayment 前端支付完成后携带网关返回的签名来确认
func (h *Handler) VerifyPayment(ctx *ginx.Context, req VerifyPaymentReq, sess session.Session) (ginx.Result, error) {
	order, err := h.svc.ConfirmPayment(ctx.Request.Context(),
		req.GatewayOrderID, req.GatewayPaymentID, req.Signature, req.Receipt)
	if err != nil {
		return h.errorResult(err)
	}
	if order.BuyerID != sess.Claims().Uid {
		// 签名合法说明支付真实发生，只是不把别人的订单返回给当前用户
		return orderNotFoundResult, nil
	}
	return ginx.Result{Data: newOrder(order)}, nil
}

func (h *Handler) RetryPayment(ctx *ginx.Context, req OrderSNReq, sess session.Session) (ginx.Result, error) {
	intent, err := h.svc.CreateOrRetrieveIntent(ctx.Request.Context(), sess.Claims().Uid, req.SN)
	if err != nil {
		return h.errorResult(err)
	}
	return ginx.Result{Data: newIntent(intent)}, nil
}

func (h *Handler) Detail(ctx *ginx.Context, req OrderSNReq, sess session.Session) (ginx.Result, error) {
	order, err := h.svc.FindOrder(ctx.Request.Context(), sess.Claims().Uid, req.SN)
	if err != nil {
		return h.errorResult(err)
	}
	return ginx.Result{Data: newOrder(order)}, nil
}

func (h *Handler) List(ctx *ginx.Context, req ListOrdersReq, sess session.Session) (ginx.Result, error) {
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}
	orders, total, err := h.svc.ListOrders(ctx.Request.Context(), sess.Claims().Uid, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListOrdersResp{
			Total: total,
			Orders: slice.Map(orders, func(idx int, src domain.Order) Order {
				return newOrder(src)
			}),
		},
	}, nil
}

func (h *Handler) Cancel(ctx *ginx.Context, req OrderSNReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.CancelOrder(ctx.Request.Context(), sess.Claims().Uid, req.SN)
	if err != nil {
		return h.errorResult(err)
	}
	return ginx.Result{}, nil
}

func (h *Handler) errorResult(err error) (ginx.Result, error) {
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		return emptyCartResult, nil
	case errors.Is(err, service.ErrInvalidAddress):
		return invalidAddressResult, nil
	case errors.Is(err, service.ErrInvalidPaymentMode):
		return invalidPaymentModeResult, nil
	case errors.Is(err, service.ErrInvalidAmount):
		return invalidAmountResult, nil
	case errors.Is(err, service.ErrOrderNotFound):
		return orderNotFoundResult, nil
	case errors.Is(err, service.ErrSignatureMismatch):
		return signatureMismatchResult, nil
	case errors.Is(err, service.ErrInsufficientStock):
		return insufficientStockResult, nil
	case errors.Is(err, service.ErrOrderCancelled):
		return orderCancelledResult, nil
	case errors.Is(err, service.ErrReceiptMismatch):
		return receiptMismatchResult, nil
	case errors.Is(err, service.ErrOrderNotPayable):
		return orderNotPayableResult, nil
	case errors.Is(err, service.ErrOrderNotCancellable):
		return orderNotCancellableResult, nil
	case errors.Is(err, service.ErrGatewayUnavailable):
		// 网关故障属于可预期的业务结果，返回业务码，原因只记日志
		h.l.Error("支付网关不可用", elog.FieldErr(err))
		return gatewayUnavailableResult, nil
	default:
		return systemErrorResult, err
	}
}
