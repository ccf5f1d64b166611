package errs

var (
	SystemError      = ErrorCode{Code: 506001, Msg: "系统错误"}
	ProductNotFound  = ErrorCode{Code: 506002, Msg: "商品不存在"}
	ItemNotFound     = ErrorCode{Code: 506003, Msg: "购物车中没有该商品"}
	InvalidQuantity  = ErrorCode{Code: 506004, Msg: "商品数量不合法"}
	VariantNotFound  = ErrorCode{Code: 506005, Msg: "商品规格不存在"}
	QuantityExceeded = ErrorCode{Code: 506006, Msg: "商品数量超过上限"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
