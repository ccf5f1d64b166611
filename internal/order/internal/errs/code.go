package errs

var (
	SystemError         = ErrorCode{Code: 505001, Msg: "系统错误"}
	EmptyCart           = ErrorCode{Code: 505002, Msg: "购物车为空"}
	InvalidAddress      = ErrorCode{Code: 505003, Msg: "收货地址不完整"}
	InvalidPaymentMode  = ErrorCode{Code: 505004, Msg: "支付方式不合法"}
	OrderNotFound       = ErrorCode{Code: 505005, Msg: "订单不存在"}
	SignatureMismatch   = ErrorCode{Code: 505006, Msg: "支付签名校验失败"}
	InsufficientStock   = ErrorCode{Code: 505007, Msg: "库存不足"}
	GatewayUnavailable  = ErrorCode{Code: 505008, Msg: "支付网关暂时不可用，请稍后重试"}
	OrderCancelled      = ErrorCode{Code: 505009, Msg: "订单已取消"}
	ReceiptMismatch     = ErrorCode{Code: 505010, Msg: "支付凭证与订单不匹配"}
	OrderNotPayable     = ErrorCode{Code: 505011, Msg: "订单无需支付"}
	OrderNotCancellable = ErrorCode{Code: 505012, Msg: "订单已支付或已关闭，无法取消"}
	DuplicateRequest    = ErrorCode{Code: 505013, Msg: "请勿重复提交"}
	InvalidAmount       = ErrorCode{Code: 505014, Msg: "订单金额不合法"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
