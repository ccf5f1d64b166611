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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/cart/internal/domain"
	"github.com/ecodeclub/emall/internal/cart/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/cart")
	g.POST("/add", ginx.BS[AddReq](h.Add))
	g.POST("/remove", ginx.BS[ItemKey](h.Remove))
	g.POST("/quantity", ginx.BS[UpdateQuantityReq](h.UpdateQuantity))
	g.POST("/detail", ginx.S(h.Detail))
	g.POST("/clear", ginx.S(h.Clear))
}

func (h *Handler) Add(ctx *ginx.Context, req AddReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.Add(ctx.Request.Context(), sess.Claims().Uid, req.toDomain())
	if err != nil {
		return h.errorResult(err)
	}
	return ginx.Result{}, nil
}

func (h *Handler) Remove(ctx *ginx.Context, req ItemKey, sess session.Session) (ginx.Result, error) {
	err := h.svc.Remove(ctx.Request.Context(), sess.Claims().Uid, req.ProductID, req.VariantID)
	if err != nil {
		return h.errorResult(err)
	}
	return ginx.Result{}, nil
}

func (h *Handler) UpdateQuantity(ctx *ginx.Context, req UpdateQuantityReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.UpdateQuantity(ctx.Request.Context(), sess.Claims().Uid, domain.Item{
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return h.errorResult(err)
	}
	return ginx.Result{}, nil
}

func (h *Handler) Detail(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	c, err := h.svc.GetCart(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: Cart{
			TotalPrice: c.TotalPrice(),
			Items: slice.Map(c.Items, func(idx int, src domain.Item) Item {
				return newItem(src)
			}),
		},
	}, nil
}

func (h *Handler) Clear(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	err := h.svc.ClearCart(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{}, nil
}

func (h *Handler) errorResult(err error) (ginx.Result, error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		return productNotFoundResult, nil
	case errors.Is(err, service.ErrVariantNotFound):
		return variantNotFoundResult, nil
	case errors.Is(err, service.ErrItemNotFound):
		return itemNotFoundResult, nil
	case errors.Is(err, service.ErrInvalidQuantity):
		return invalidQuantityResult, nil
	case errors.Is(err, service.ErrQuantityExceeded):
		return quantityExceededResult, nil
	default:
		return systemErrorResult, err
	}
}
