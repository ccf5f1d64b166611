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

package ioc

import (
	"time"

	"github.com/ecodeclub/emall/internal/payment/internal/gateway"
	"github.com/ecodeclub/emall/internal/payment/internal/service"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
	"github.com/prometheus/client_golang/prometheus"
)

type RazorpayConfig struct {
	BaseURL       string
	KeyID         string
	KeySecret     string
	WebhookSecret string
	Currency      string
	Timeout       time.Duration

	// 开启后使用内存网关，不会请求 Razorpay
	Sandbox bool

	Breaker struct {
		MaxRequests  uint32
		Interval     time.Duration
		Timeout      time.Duration
		MinRequests  uint32
		FailureRatio float64
	}
}

func InitRazorpayConfig() RazorpayConfig {
	cfg := RazorpayConfig{
		BaseURL:  "https://api.razorpay.com",
		Currency: "INR",
		Timeout:  5 * time.Second,
	}
	err := econf.UnmarshalKey("payment.razorpay", &cfg)
	if err != nil {
		panic(err)
	}
	return cfg
}

func InitServiceConfig(cfg RazorpayConfig) service.Config {
	return service.Config{
		KeyID:         cfg.KeyID,
		KeySecret:     cfg.KeySecret,
		WebhookSecret: cfg.WebhookSecret,
		Currency:      cfg.Currency,
	}
}

func InitGateway(cfg RazorpayConfig) gateway.Gateway {
	var gw gateway.Gateway
	if cfg.Sandbox {
		elog.DefaultLogger.Warn("支付网关使用沙箱模式")
		sb, err := gateway.NewSandbox(cfg.KeyID, 1)
		if err != nil {
			panic(err)
		}
		gw = sb
	} else {
		gw = gateway.NewRazorpay(cfg.BaseURL, cfg.KeyID, cfg.KeySecret, cfg.Timeout)
	}
	bc := gateway.DefaultBreakerConfig()
	if cfg.Breaker.MaxRequests > 0 {
		bc.MaxRequests = cfg.Breaker.MaxRequests
	}
	if cfg.Breaker.Interval > 0 {
		bc.Interval = cfg.Breaker.Interval
	}
	if cfg.Breaker.Timeout > 0 {
		bc.Timeout = cfg.Breaker.Timeout
	}
	if cfg.Breaker.MinRequests > 0 {
		bc.MinRequests = cfg.Breaker.MinRequests
	}
	if cfg.Breaker.FailureRatio > 0 {
		bc.FailureRatio = cfg.Breaker.FailureRatio
	}
	return gateway.NewBreakerGateway("razorpay", gw, bc, prometheus.DefaultRegisterer)
}
