package stats

import (
	"github.com/shipdesk/internal/constants"
	"github.com/shipdesk/internal/models"
)

// Activity 用户操作记录
type Activity struct {
	Action     string `json:"action"`      // create / update
	EntityType string `json:"entity_type"` // 实体类型（表名）
	EntityID   uint   `json:"entity_id"`   // 实体主键
	UserID     uint   `json:"user_id"`     // 操作用户
	Username   string `json:"username"`    // 操作用户名
}

// ActivityInput 参与操作记录计算的各实体列表
type ActivityInput struct {
	Customers []models.Customer
	Shipments []models.Shipment
	Partials  []models.PartialShipment
	Packages  []models.Package
	Items     []models.PartialShipmentItem
}

// BuildActivityFeed 生成操作记录。
// 每条记录的创建人 / 最后更新人各产生一条 create / update 事件；
// 审计字段指向未知用户时静默跳过，不视为错误。
func BuildActivityFeed(input ActivityInput, users []models.User) []Activity {
	usernames := make(map[uint]string, len(users))
	for _, user := range users {
		usernames[user.ID] = user.Username
	}

	var feed []Activity
	emit := func(entityType string, entityID uint, createdBy, updatedBy *uint) {
		if createdBy != nil {
			if name, ok := usernames[*createdBy]; ok {
				feed = append(feed, Activity{
					Action:     constants.ActivityActionCreate,
					EntityType: entityType,
					EntityID:   entityID,
					UserID:     *createdBy,
					Username:   name,
				})
			}
		}
		if updatedBy != nil {
			if name, ok := usernames[*updatedBy]; ok {
				feed = append(feed, Activity{
					Action:     constants.ActivityActionUpdate,
					EntityType: entityType,
					EntityID:   entityID,
					UserID:     *updatedBy,
					Username:   name,
				})
			}
		}
	}

	for _, shipment := range input.Shipments {
		emit(constants.TableShipments, shipment.ID, shipment.CreatedByUserID, shipment.UpdatedByUserID)
	}
	for _, partial := range input.Partials {
		emit(constants.TablePartialShipments, partial.ID, partial.CreatedByUserID, partial.UpdatedByUserID)
	}
	for _, pkg := range input.Packages {
		emit(constants.TablePackages, pkg.ID, pkg.CreatedByUserID, pkg.UpdatedByUserID)
	}
	for _, item := range input.Items {
		emit(constants.TablePartialShipmentItems, item.ID, item.CreatedByUserID, item.UpdatedByUserID)
	}
	for _, customer := range input.Customers {
		emit(constants.TableCustomers, customer.ID, customer.CreatedByUserID, customer.UpdatedByUserID)
	}
	return feed
}
