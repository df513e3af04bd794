package service

import "errors"

// 服务层哨兵错误。HTTP 边界按错误种类映射响应码。
var (
	// ErrInvalidArgument 入参非法
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrSameShipment 转移目标批次与来源批次相同
	ErrSameShipment = errors.New("target shipment equals source shipment")
	// ErrNotInSourceShipment 部分托运不属于声明的来源批次
	ErrNotInSourceShipment = errors.New("partial shipment does not belong to source shipment")
	// ErrShipmentClosed 批次已关闭，不接受转移
	ErrShipmentClosed = errors.New("shipment is closed")
	// ErrUserExists 用户名已存在
	ErrUserExists = errors.New("username already exists")
	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrPasswordTooShort 密码长度不满足策略
	ErrPasswordTooShort = errors.New("password too short")
	// ErrCaptchaInvalid 验证码校验失败
	ErrCaptchaInvalid = errors.New("captcha verification failed")
)
