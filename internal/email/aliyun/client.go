package aliyun

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dm20151123 "github.com/alibabacloud-go/dm-20151123/v2/client"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
	credential "github.com/aliyun/credentials-go/credentials"
	"github.com/ecodeclub/emall/internal/email"
)

var _ email.Service = (*DirectMail)(nil)

// DirectMail 阿里云邮件推送
type DirectMail struct {
	client *dm20151123.Client
	// accountName 控制台配置的发信地址，例如 noreply@mail.example.com
	accountName string
}

func NewDirectMail(accessKeyID, accessKeySecret, accountName string) (*DirectMail, error) {
	cred, err := credential.NewCredential(&credential.Config{
		Type:            tea.String("access_key"),
		AccessKeyId:     tea.String(accessKeyID),
		AccessKeySecret: tea.String(accessKeySecret),
	})
	if err != nil {
		return nil, fmt.Errorf("创建阿里云凭据失败: %w", err)
	}
	client, err := dm20151123.NewClient(&openapi.Config{
		Credential: cred,
		Endpoint:   tea.String("dm.aliyuncs.com"),
	})
	if err != nil {
		return nil, fmt.Errorf("创建邮件推送客户端失败: %w", err)
	}
	return &DirectMail{
		client:      client,
		accountName: accountName,
	}, nil
}

func (d *DirectMail) SendMail(ctx context.Context, mail email.Mail) error {
	if mail.To == "" {
		return errors.New("收件人为空")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	request := &dm20151123.SingleSendMailAdvanceRequest{
		AccountName:    tea.String(d.accountName),
		FromAlias:      tea.String(mail.From),
		AddressType:    tea.Int32(1),
		ToAddress:      tea.String(mail.To),
		Subject:        tea.String(mail.Subject),
		HtmlBody:       tea.String(string(mail.Body)),
		ReplyToAddress: tea.Bool(false),
	}
	if mail.Text != "" {
		request.TextBody = tea.String(mail.Text)
	}
	if len(mail.Attachments) > 0 {
		attachments := make([]*dm20151123.SingleSendMailAdvanceRequestAttachments, 0, len(mail.Attachments))
		for idx := range mail.Attachments {
			att := &dm20151123.SingleSendMailAdvanceRequestAttachments{}
			att.SetAttachmentName(mail.Attachments[idx].Filename)
			att.SetAttachmentUrlObject(bytes.NewReader(mail.Attachments[idx].Content))
			attachments = append(attachments, att)
		}
		request.Attachments = attachments
	}
	_, err := d.client.SingleSendMailAdvance(request, &util.RuntimeOptions{})
	if err != nil {
		return d.wrapError(err)
	}
	return nil
}

// wrapError 把 SDK 返回的建议和 RequestId 带到错误信息里，方便排查
func (d *DirectMail) wrapError(err error) error {
	var sdkErr *tea.SDKError
	if !errors.As(err, &sdkErr) {
		return fmt.Errorf("邮件发送失败: %w", err)
	}
	msg := fmt.Sprintf("邮件推送失败: %s", tea.StringValue(sdkErr.Message))
	if sdkErr.Data != nil {
		var data map[string]any
		if json.NewDecoder(strings.NewReader(tea.StringValue(sdkErr.Data))).Decode(&data) == nil {
			if recommend, ok := data["Recommend"]; ok {
				msg += fmt.Sprintf(" | 建议: %v", recommend)
			}
			if requestID, ok := data["RequestId"]; ok {
				msg += fmt.Sprintf(" | RequestId: %v", requestID)
			}
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
