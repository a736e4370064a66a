package show

// Response 无数据可回的操作统一应答
type Response struct {
	Msg string `json:"msg"`
}
