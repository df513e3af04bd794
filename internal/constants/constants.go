package constants

// 表名常量
const (
	TableCustomers            = "customers"
	TableShipments            = "shipments"
	TablePartialShipments     = "partial_shipments"
	TablePackages             = "packages"
	TablePartialShipmentItems = "partial_shipment_items"
	TableNotes                = "notes"
	TableUsers                = "users"
)

// 批次状态常量
const (
	ShipmentStatusOpen   = "open"
	ShipmentStatusClosed = "closed"
)

// 付款状态常量
const (
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// 客户来源缺省分组
const (
	CustomerOriginUnknown = "Unknown"
)

// 操作记录类型常量
const (
	ActivityActionCreate = "create"
	ActivityActionUpdate = "update"
)

// 队列名常量
const (
	QueueDefault = "default"
)

// 异步任务类型常量
const (
	TaskShipmentRecalcTotals = "shipment:recalc_totals"
	TaskDashboardWarmCache   = "dashboard:warm_cache"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)
