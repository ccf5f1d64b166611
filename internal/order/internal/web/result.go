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
	"github.com/ecodeclub/emall/internal/order/internal/errs"
	"github.com/ecodeclub/ginx"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	emptyCartResult = ginx.Result{
		Code: errs.EmptyCart.Code,
		Msg:  errs.EmptyCart.Msg,
	}
	invalidAddressResult = ginx.Result{
		Code: errs.InvalidAddress.Code,
		Msg:  errs.InvalidAddress.Msg,
	}
	invalidPaymentModeResult = ginx.Result{
		Code: errs.InvalidPaymentMode.Code,
		Msg:  errs.InvalidPaymentMode.Msg,
	}
	orderNotFoundResult = ginx.Result{
		Code: errs.OrderNotFound.Code,
		Msg:  errs.OrderNotFound.Msg,
	}
	signatureMismatchResult = ginx.Result{
		Code: errs.SignatureMismatch.Code,
		Msg:  errs.SignatureMismatch.Msg,
	}
	insufficientStockResult = ginx.Result{
		Code: errs.InsufficientStock.Code,
		Msg:  errs.InsufficientStock.Msg,
	}
	gatewayUnavailableResult = ginx.Result{
		Code: errs.GatewayUnavailable.Code,
		Msg:  errs.GatewayUnavailable.Msg,
	}
	orderCancelledResult = ginx.Result{
		Code: errs.OrderCancelled.Code,
		Msg:  errs.OrderCancelled.Msg,
	}
	receiptMismatchResult = ginx.Result{
		Code: errs.ReceiptMismatch.Code,
		Msg:  errs.ReceiptMismatch.Msg,
	}
	orderNotPayableResult = ginx.Result{
		Code: errs.OrderNotPayable.Code,
		Msg:  errs.OrderNotPayable.Msg,
	}
	orderNotCancellableResult = ginx.Result{
		Code: errs.OrderNotCancellable.Code,
		Msg:  errs.OrderNotCancellable.Msg,
	}
	duplicateRequestResult = ginx.Result{
		Code: errs.DuplicateRequest.Code,
		Msg:  errs.DuplicateRequest.Msg,
	}
	invalidAmountResult = ginx.Result{
		Code: errs.InvalidAmount.Code,
		Msg:  errs.InvalidAmount.Msg,
	}
)
