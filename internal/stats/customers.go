package stats

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/shipdesk/internal/constants"
	"github.com/shipdesk/internal/models"
)

const topCustomerLimit = 10

// CustomerRanking 客户排行条目
type CustomerRanking struct {
	CustomerID uint    `json:"customer_id"`
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
}

// OriginCount 按客户来源分组的数量
type OriginCount struct {
	Origin string `json:"origin"`
	Count  int    `json:"count"`
}

// CustomerSummary 客户汇总
type CustomerSummary struct {
	TopByBalance       []CustomerRanking `json:"top_by_balance"`
	TopByShipmentCount []CustomerRanking `json:"top_by_shipment_count"`
	TopByRevenue       []CustomerRanking `json:"top_by_revenue"`
	ByOrigin           []OriginCount     `json:"by_origin"`
}

// BuildCustomerSummary 计算客户汇总。
// 排行取前 10，按指标降序稳定排序，并列时保持客户列表原序；
// 来源为空的客户归入 Unknown 分组。
func BuildCustomerSummary(customers []models.Customer, partials []models.PartialShipment) CustomerSummary {
	countByCustomer := map[uint]int{}
	revenueByCustomer := map[uint]decimal.Decimal{}
	for _, partial := range partials {
		countByCustomer[partial.CustomerID]++
		revenue := decimal.NewFromFloat(partial.Cost).
			Add(decimal.NewFromFloat(partial.ExtraCostAmount)).
			Sub(decimal.NewFromFloat(partial.DiscountAmount))
		revenueByCustomer[partial.CustomerID] = revenueByCustomer[partial.CustomerID].Add(revenue)
	}

	summary := CustomerSummary{
		TopByBalance: topCustomers(customers, func(c models.Customer) float64 {
			return c.Balance
		}),
		TopByShipmentCount: topCustomers(customers, func(c models.Customer) float64 {
			return float64(countByCustomer[c.ID])
		}),
		TopByRevenue: topCustomers(customers, func(c models.Customer) float64 {
			return round2(revenueByCustomer[c.ID])
		}),
	}

	byOrigin := map[string]int{}
	for _, customer := range customers {
		origin := customer.Origin
		if origin == "" {
			origin = constants.CustomerOriginUnknown
		}
		byOrigin[origin]++
	}
	summary.ByOrigin = make([]OriginCount, 0, len(byOrigin))
	for origin, count := range byOrigin {
		summary.ByOrigin = append(summary.ByOrigin, OriginCount{Origin: origin, Count: count})
	}
	sort.Slice(summary.ByOrigin, func(i, j int) bool {
		return summary.ByOrigin[i].Origin < summary.ByOrigin[j].Origin
	})
	return summary
}

func topCustomers(customers []models.Customer, metric func(models.Customer) float64) []CustomerRanking {
	rankings := make([]CustomerRanking, 0, len(customers))
	for _, customer := range customers {
		rankings = append(rankings, CustomerRanking{
			CustomerID: customer.ID,
			Name:       customer.Name,
			Value:      metric(customer),
		})
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Value > rankings[j].Value
	})
	if len(rankings) > topCustomerLimit {
		rankings = rankings[:topCustomerLimit]
	}
	return rankings
}
