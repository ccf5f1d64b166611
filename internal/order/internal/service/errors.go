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

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/emall/internal/product"
)

var (
	ErrEmptyCart           = errors.New("购物车为空")
	ErrInvalidAddress      = errors.New("收货地址不完整")
	ErrInvalidPaymentMode  = errors.New("支付方式不合法")
	ErrInvalidAmount       = errors.New("订单金额不合法")
	ErrOrderNotFound       = errors.New("订单不存在")
	ErrOrderCancelled      = errors.New("订单已取消")
	ErrReceiptMismatch     = errors.New("支付凭证与订单不匹配")
	ErrOrderNotPayable     = errors.New("订单无需支付")
	ErrOrderNotCancellable = errors.New("订单无法取消")
	ErrInsufficientStock   = errors.New("库存不足")
	ErrSignatureMismatch   = payment.ErrSignatureMismatch
	ErrGatewayUnavailable  = payment.ErrGatewayUnavailable
	// errOrderStateChanged CAS 没有命中并且订单既不是已支付也不是已取消
	errOrderStateChanged = errors.New("订单状态已变化")
)

// InsufficientStockError 列出库存不足的行，errors.Is(err, ErrInsufficientStock) 为 true
type InsufficientStockError struct {
	Shortfalls []product.Shortfall
}

func (e *InsufficientStockError) Error() string {
	lines := slice.Map(e.Shortfalls, func(idx int, src product.Shortfall) string {
		return fmt.Sprintf("product=%d variant=%d requested=%d", src.ProductID, src.VariantID, src.Requested)
	})
	return fmt.Sprintf("%s: %s", ErrInsufficientStock.Error(), strings.Join(lines, "; "))
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
