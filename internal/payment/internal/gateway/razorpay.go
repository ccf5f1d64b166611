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
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/go-resty/resty/v2"
)

var _ Gateway = (*Razorpay)(nil)

// Razorpay 基于 Razorpay Orders API 的实现
type Razorpay struct {
	client *resty.Client
	keyID  string
}

func NewRazorpay(baseURL, keyID, keySecret string, timeout time.Duration) *Razorpay {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetBasicAuth(keyID, keySecret).
		SetHeader("Content-Type", "application/json").
		// 重试交给上层，避免重复创建订单
		SetRetryCount(0)
	return &Razorpay{client: client, keyID: keyID}
}

type createOrderReq struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResp struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type paymentsResp struct {
	Count int             `json:"count"`
	Items []paymentEntity `json:"items"`
}

type errResp struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (r *Razorpay) CreateIntent(ctx context.Context, amount int64, currency, receipt string) (domain.Intent, error) {
	var (
		res orderResp
		er  errResp
	)
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(createOrderReq{Amount: amount, Currency: currency, Receipt: receipt}).
		SetResult(&res).
		SetError(&er).
		Post("/v1/orders")
	if err = r.check(resp, err, &er); err != nil {
		return domain.Intent{}, fmt.Errorf("创建网关订单失败 receipt=%s: %w", receipt, err)
	}
	if res.ID == "" {
		return domain.Intent{}, fmt.Errorf("%w: 网关未返回订单号", ErrUnavailable)
	}
	return domain.Intent{
		ID:       res.ID,
		Amount:   res.Amount,
		Currency: res.Currency,
		Receipt:  res.Receipt,
		KeyID:    r.keyID,
	}, nil
}

func (r *Razorpay) FetchOrderPayments(ctx context.Context, orderRef string) ([]domain.GatewayPayment, error) {
	var (
		res paymentsResp
		er  errResp
	)
	resp, err := r.client.R().
		SetContext(ctx).
		SetPathParam("id", orderRef).
		SetResult(&res).
		SetError(&er).
		Get("/v1/orders/{id}/payments")
	if err = r.check(resp, err, &er); err != nil {
		return nil, fmt.Errorf("查询网关支付记录失败 order=%s: %w", orderRef, err)
	}
	return slice.Map(res.Items, func(idx int, src paymentEntity) domain.GatewayPayment {
		return src.toDomain()
	}), nil
}

// check 把传输错误和 5xx 归为 ErrUnavailable，4xx 归为 ErrRejected
func (r *Razorpay) check(resp *resty.Response, err error, er *errResp) error {
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if !resp.IsError() {
		return nil
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status=%d", ErrUnavailable, resp.StatusCode())
	}
	return fmt.Errorf("%w: status=%d code=%s desc=%s",
		ErrRejected, resp.StatusCode(), er.Error.Code, er.Error.Description)
}
