package client

import (
	"context"
	"errors"
)

const (
	OK = "OK"
)

var (
	ErrSendFailed       = errors.New("发送短信失败")
	ErrInvalidParameter = errors.New("参数无效")
)

// Client 短信客户端
//
//go:generate mockgen -source=./types.go -destination=./mocks/sms.mock.go -package=smsmocks Client
type Client interface {
	Send(ctx context.Context, req SendReq) (SendResp, error)
}

type SendReq struct {
	// PhoneNumbers 带国家码的手机号，例如 +919800000000
	PhoneNumbers  []string
	TemplateID    string
	TemplateParam map[string]string
}

type SendResp struct {
	RequestID string
	// PhoneNumbers 去掉 + 号之后的手机号
	PhoneNumbers map[string]SendRespStatus
}

type SendRespStatus struct {
	Code    string
	Message string
}
