package email

import (
	"context"

	"github.com/gotomicro/ego/core/elog"
)

var _ Service = (*ConsoleService)(nil)

// ConsoleService 只打日志，没有配置邮件服务时使用
type ConsoleService struct {
	logger *elog.Component
}

func NewConsoleService() *ConsoleService {
	return &ConsoleService{logger: elog.DefaultLogger}
}

func (c *ConsoleService) SendMail(ctx context.Context, mail Mail) error {
	c.logger.Info("发送邮件",
		elog.String("to", mail.To),
		elog.String("subject", mail.Subject),
		elog.Int("size", len(mail.Body)))
	return nil
}
