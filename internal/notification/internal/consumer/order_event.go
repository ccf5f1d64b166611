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

package consumer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/ecodeclub/emall/internal/email"
	"github.com/ecodeclub/emall/internal/order"
	"github.com/ecodeclub/emall/internal/pkg/mqx"
	"github.com/ecodeclub/emall/internal/sms/client"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

type SMSConfig struct {
	// 各事件对应的短信模板
	OrderPlacedTemplateID string `yaml:"orderPlacedTemplateID"`
	OrderPaidTemplateID   string `yaml:"orderPaidTemplateID"`
}

type EmailConfig struct {
	// FromAlias 发信人昵称
	FromAlias string `yaml:"fromAlias"`
}

type Config struct {
	SMS   SMSConfig   `yaml:"sms"`
	Email EmailConfig `yaml:"email"`
}

var orderMailTmpl = template.Must(template.New("order").Parse(
	`<p>{{.FullName}}，您好：</p>` +
		`<p>{{.Title}}</p>` +
		`<p>订单号：{{.OrderSN}}</p>` +
		`<p>金额：{{.Amount}} {{.Currency}}</p>`))

type orderMail struct {
	Title    string
	FullName string
	OrderSN  string
	Amount   string
	Currency string
}

// OrderEventConsumer 订单下单、支付成功后给买家发短信和邮件
type OrderEventConsumer struct {
	consumer mq.Consumer
	sms      client.Client
	mail     email.Service
	cfg      Config
	logger   *elog.Component
}

func NewOrderEventConsumer(q mq.MQ, sms client.Client, mail email.Service, cfg Config) (*OrderEventConsumer, error) {
	const groupID = "notification.order"
	c, err := q.Consumer(order.OrderEventName, groupID)
	if err != nil {
		return nil, err
	}
	return &OrderEventConsumer{
		consumer: c,
		sms:      sms,
		mail:     mail,
		cfg:      cfg,
		logger:   elog.DefaultLogger.With(elog.FieldComponent("notification.order.consumer")),
	}, nil
}

func (c *OrderEventConsumer) Start(ctx context.Context) {
	go func() {
		for {
			err := c.Consume(ctx)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				c.logger.Error("消费订单事件失败", elog.FieldErr(err))
			}
		}
	}()
}

func (c *OrderEventConsumer) Consume(ctx context.Context) error {
	evt, err := mqx.ConsumeJSON[order.OrderEvent](ctx, c.consumer)
	if err != nil {
		return err
	}
	return c.Handle(ctx, evt)
}

// Handle 短信和邮件互不影响，任意一个失败都会返回错误，但另一个照常发送
func (c *OrderEventConsumer) Handle(ctx context.Context, evt order.OrderEvent) error {
	title, templateID, ok := c.describe(evt.Type)
	if !ok {
		c.logger.Warn("忽略未知订单事件", elog.String("type", evt.Type), elog.String("sn", evt.OrderSN))
		return nil
	}
	amount := formatAmount(evt.TotalAmount)
	var smsErr, mailErr error
	if evt.Phone != "" && templateID != "" {
		smsErr = c.sendSMS(ctx, evt, templateID, amount)
	}
	if evt.Email != "" {
		mailErr = c.sendMail(ctx, evt, title, amount)
	}
	return errors.Join(smsErr, mailErr)
}

func (c *OrderEventConsumer) describe(typ string) (title, templateID string, ok bool) {
	switch typ {
	case order.TypeOrderPlaced:
		return "您的货到付款订单已提交", c.cfg.SMS.OrderPlacedTemplateID, true
	case order.TypeOrderPaid:
		return "您的订单已支付成功", c.cfg.SMS.OrderPaidTemplateID, true
	default:
		return "", "", false
	}
}

func (c *OrderEventConsumer) sendSMS(ctx context.Context, evt order.OrderEvent, templateID, amount string) error {
	resp, err := c.sms.Send(ctx, client.SendReq{
		PhoneNumbers: []string{evt.Phone},
		TemplateID:   templateID,
		TemplateParam: map[string]string{
			"sn":     evt.OrderSN,
			"amount": amount,
		},
	})
	if err != nil {
		return fmt.Errorf("发送订单短信失败 sn=%s: %w", evt.OrderSN, err)
	}
	for phone, status := range resp.PhoneNumbers {
		if status.Code != client.OK {
			c.logger.Warn("订单短信未送达",
				elog.String("sn", evt.OrderSN),
				elog.String("phone", phone),
				elog.String("code", status.Code),
				elog.String("msg", status.Message))
		}
	}
	return nil
}

func (c *OrderEventConsumer) sendMail(ctx context.Context, evt order.OrderEvent, title, amount string) error {
	var buf bytes.Buffer
	err := orderMailTmpl.Execute(&buf, orderMail{
		Title:    title,
		FullName: evt.FullName,
		OrderSN:  evt.OrderSN,
		Amount:   amount,
		Currency: evt.Currency,
	})
	if err != nil {
		return fmt.Errorf("渲染订单邮件失败 sn=%s: %w", evt.OrderSN, err)
	}
	err = c.mail.SendMail(ctx, email.Mail{
		From:    c.cfg.Email.FromAlias,
		To:      evt.Email,
		Subject: fmt.Sprintf("%s（%s）", title, evt.OrderSN),
		Body:    buf.Bytes(),
		Text:    fmt.Sprintf("%s，订单号 %s，金额 %s %s", title, evt.OrderSN, amount, evt.Currency),
	})
	if err != nil {
		return fmt.Errorf("发送订单邮件失败 sn=%s: %w", evt.OrderSN, err)
	}
	return nil
}

// formatAmount 最小货币单位转成两位小数
func formatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
