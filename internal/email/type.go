package email

import "context"

//go:generate mockgen -source=./type.go -package=emailmocks -destination=./mocks/email.mock.go Service
type Service interface {
	SendMail(ctx context.Context, mail Mail) error
}

type Mail struct {
	// From 发信人昵称，发信地址由具体实现决定
	From    string
	To      string
	Subject string
	// Body HTML 内容
	Body []byte
	// Text 纯文本内容，不支持 HTML 的客户端展示这个
	Text        string
	Attachments []Attachment
}

type Attachment struct {
	Filename string
	Content  []byte
}
