package client

import (
	"context"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"
	"github.com/lithammer/shortuuid/v4"
)

var _ Client = (*ConsoleClient)(nil)

// ConsoleClient 只打日志，本地开发和没有配置短信服务时使用
type ConsoleClient struct {
	logger *elog.Component
}

func NewConsoleClient() *ConsoleClient {
	return &ConsoleClient{
		logger: elog.DefaultLogger,
	}
}

func (c *ConsoleClient) Send(ctx context.Context, req SendReq) (SendResp, error) {
	if len(req.PhoneNumbers) == 0 {
		return SendResp{}, ErrInvalidParameter
	}
	c.logger.Info("发送短信",
		elog.String("template", req.TemplateID),
		elog.Any("phones", req.PhoneNumbers),
		elog.Any("params", req.TemplateParam))
	return SendResp{
		RequestID: shortuuid.New(),
		PhoneNumbers: slice.ToMapV(req.PhoneNumbers, func(element string) (string, SendRespStatus) {
			return strings.TrimPrefix(element, "+"), SendRespStatus{
				Code: OK,
			}
		}),
	}, nil
}
