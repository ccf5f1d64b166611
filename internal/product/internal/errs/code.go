package errs

var (
	SystemError     = ErrorCode{Code: 507001, Msg: "系统错误"}
	ProductNotFound = ErrorCode{Code: 507002, Msg: "商品不存在"}
	InvalidStock    = ErrorCode{Code: 507003, Msg: "库存不合法"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
