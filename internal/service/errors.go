package service

import "errors"

// 业务错误定义
// Handler 层通过 errors.Is 将其映射为对应的 HTTP 状态码与业务码
var (
	ErrEmailTaken         = errors.New("邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")

	ErrInstructorNotFound = errors.New("教练不存在或已停用")
	ErrNotInstructor      = errors.New("当前账号不是教练")

	ErrSessionNotFound = errors.New("预约不存在")
	// 取消/编辑门禁刻意不区分"不存在 / 非本人 / 状态不符"，避免探测他人预约
	ErrSessionNotCancellable = errors.New("预约不存在或当前状态不可取消")
	ErrSessionNotEditable    = errors.New("预约不存在或当前状态不可修改")
	ErrSessionNotRespondable = errors.New("预约不存在或已处理")
	ErrNothingToClear        = errors.New("没有可清除的预约记录")

	ErrProductNotFound  = errors.New("商品不存在或已下架")
	ErrCartItemNotFound = errors.New("购物车中不存在该商品")
	ErrCartEmpty        = errors.New("购物车为空")
	ErrOrderNotFound    = errors.New("订单不存在")
)

// ValidationError 输入校验错误，Fields 为字段名 → 错误信息
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "参数校验失败"
}
